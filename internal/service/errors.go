package service

import "errors"

// Sentinel errors for service layer
var (
	// ErrDispatch means the notification email could not be handed off.
	ErrDispatch = errors.New("email dispatch failed")
	// ErrRecaptcha means the spam check rejected the request.
	ErrRecaptcha = errors.New("recaptcha verification failed")
)
