package governance

import (
	logging "github.com/inconshreveable/log15"

	"oceandao.io/gov/lib/common"
)

var log logging.Logger = logging.New("module", "governance")

func init() {
	SetLogging(common.DefaultLogLevel, common.DefaultLogHandler)
}

func SetLogging(level logging.Lvl, handler logging.Handler) {
	common.SetLogging(log, level, handler)
}
