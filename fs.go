package main

import "io/fs"

// FS groups together the filesystem interfaces that are common between
// embed.FS and what os.DirFS() returns. This way the configuration can be read
// the same way from the embedded defaults and from a file on disk.
type FS interface {
	fs.FS
	fs.ReadFileFS
	fs.ReadDirFS
}
