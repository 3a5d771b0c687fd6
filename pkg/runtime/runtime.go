// Package runtime embeds the browser script that re-syncs field groups on
// page load and whenever a control changes.
package runtime

import (
	"embed"
	"io/fs"
)

// ScriptName is the file name of the runtime inside AssetsFS.
const ScriptName = "fieldgroup.js"

//go:embed assets/*.js
var embeddedAssets embed.FS

// AssetsFS exposes the runtime assets rooted at the assets directory.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

// Script returns the runtime source for inlining.
func Script() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+ScriptName)
	if err != nil {
		return ""
	}
	return string(data)
}
