package progress

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// stdout is reserved for frames
var Output io.Writer = os.Stderr

var Progress = progressCreate(-1, "", false) // init as spinner

func ProgressReset(max int, desc string, quiet bool) {
	Progress = progressCreate(max, desc, quiet)
}

func Add(n int) {
	_ = Progress.Add(n)
}

func Finish() {
	_ = Progress.Finish()
}

func progressCreate(max int, desc string, quiet bool) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetWriter(Output),
		progressbar.OptionSetVisibility(!quiet),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]/[reset]",
			SaucerHead:    "[green]/[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
