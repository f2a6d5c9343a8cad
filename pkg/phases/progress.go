package phases

import (
	"github.com/pcj/mobyprogress"
)

func writeCollectProgress(output mobyprogress.Output, current, total int) {
	output.WriteProgress(mobyprogress.Progress{
		ID:      "collect",
		Action:  "collecting declarations",
		Current: int64(current),
		Total:   int64(total),
		Units:   "modules",
	})
}

func writeImportProgress(output mobyprogress.Output, current, total int) {
	output.WriteProgress(mobyprogress.Progress{
		ID:      "import",
		Action:  "resolving imports",
		Current: int64(current),
		Total:   int64(total),
		Units:   "modules",
	})
}

func writeReferenceProgress(output mobyprogress.Output, current, total int, lastUpdate bool) {
	output.WriteProgress(mobyprogress.Progress{
		ID:         "resolve",
		Action:     "resolving references",
		Current:    int64(current),
		Total:      int64(total),
		Units:      "modules",
		LastUpdate: lastUpdate,
	})
}
