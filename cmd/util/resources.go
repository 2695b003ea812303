package util

import (
	"os"
	"path"

	"github.com/TuftsBCB/complexfeat/features"
)

// Output file names, relative to the output directory.
const (
	FeaturesFile = "features.gob"
	DepthFile    = "msa_depth.json"
)

func FeaturesRead(path string) features.Dict {
	f := OpenFile(path)
	defer f.Close()

	d, err := features.Read(f)
	Assert(err, "Could not GOB decode features '%s'", path)
	return d
}

// FeaturesWrite writes the features and their msa_depth summary to the
// output directory.
func FeaturesWrite(dir string, d features.Dict) {
	Assert(os.MkdirAll(dir, 0777), "Could not create directory '%s'", dir)

	fpath := path.Join(dir, FeaturesFile)
	f := CreateFile(fpath)
	Assert(features.Write(f, d), "Could not GOB encode features")
	Assert(f.Close(), "Could not write '%s'", fpath)

	dpath := path.Join(dir, DepthFile)
	df := CreateFile(dpath)
	Assert(features.WriteDepth(df, d), "Could not write MSA depth")
	Assert(df.Close(), "Could not write '%s'", dpath)
}

func OpenFile(path string) *os.File {
	f, err := os.Open(path)
	Assert(err, "Could not open file '%s'", path)
	return f
}

func CreateFile(path string) *os.File {
	f, err := os.Create(path)
	Assert(err, "Could not create file '%s'", path)
	return f
}
