package server

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// mediaTypes covers extensions the stdlib table does not know on every host.
var mediaTypes = map[string]string{
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
}

// mediaServer serves files from the media directory. Directories and missing
// files are 404s; there is no listing and no fallback page.
type mediaServer struct {
	fileServer http.Handler
	fileSystem fs.FS
}

func newMediaServer(fsys fs.FS) *mediaServer {
	return &mediaServer{
		fileServer: http.FileServer(http.FS(fsys)),
		fileSystem: fsys,
	}
}

func (s *mediaServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/")
	if name == "" || !fs.ValidPath(name) {
		http.NotFound(w, r)
		return
	}

	info, err := fs.Stat(s.fileSystem, name)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	if ct, ok := mediaTypes[strings.ToLower(path.Ext(name))]; ok {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	s.fileServer.ServeHTTP(w, r)
}
