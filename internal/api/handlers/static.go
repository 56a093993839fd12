package handlers

import (
	"bytes"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/swiftstatic/swiftstatic/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

const (
	indexFile = "index.html"

	cacheHTML   = "public, no-cache"
	cacheAssets = "public, max-age=31536000, immutable"
)

// preloadLinks is sent with every HTML document so the stylesheet and script
// start downloading before the parser reaches them.
var preloadLinks = strings.Join([]string{
	"</style.css>; rel=preload; as=style",
	"</script.js>; rel=preload; as=script",
}, ", ")

// StaticHandler serves the site from files and falls back to the root
// document for any path it does not know.
type StaticHandler struct {
	files fs.FS
}

func NewStaticHandler(files fs.FS) *StaticHandler {
	return &StaticHandler{files: files}
}

// Serve is installed as the router's NoRoute handler. Unknown API paths and
// methods other than GET and HEAD get a JSON 404 instead of the page.
func (h *StaticHandler) Serve(c *gin.Context) {
	p := c.Request.URL.Path
	if strings.HasPrefix(p, "/api/") || p == "/api" ||
		(c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
		c.JSON(http.StatusNotFound, common.NewErrorResponse(common.MsgNotFound, nil))
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+p), "/")
	if name == "" {
		name = indexFile
	}

	if err := h.serveFile(c, name); err != nil {
		if err := h.serveFile(c, indexFile); err != nil {
			c.JSON(http.StatusNotFound, common.NewErrorResponse(common.MsgNotFound, nil))
		}
	}
}

func (h *StaticHandler) serveFile(c *gin.Context, name string) error {
	f, err := h.files.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fs.ErrNotExist
	}

	content, ok := f.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(f)
		if err != nil {
			return err
		}
		content = bytes.NewReader(data)
	}

	if strings.HasSuffix(name, ".html") {
		c.Header("Cache-Control", cacheHTML)
		c.Header("Link", preloadLinks)
	} else {
		c.Header("Cache-Control", cacheAssets)
	}

	http.ServeContent(c.Writer, c.Request, name, info.ModTime(), content)
	return nil
}
