package fieldgroup

import (
	"io/fs"

	"github.com/goliatone/go-fieldgroup/pkg/runtime"
)

// RuntimeAssetsFS exposes the browser runtime (fieldgroup.js) so Go
// applications can serve it without a build step.
//
// Typical mount:
//
//	mux.Handle("/runtime/",
//	  http.StripPrefix("/runtime/",
//	    http.FileServerFS(fieldgroup.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return runtime.AssetsFS()
}
