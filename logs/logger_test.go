package logs

import (
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/hubsim/modes"
)

func TestHandler(t *testing.T) {
	dscope.New(new(Module), modes.ForTest(t)).Call(func(
		logger Logger,
	) {
		logger.Info("test", "hello", "world!")
	})
}

func TestToJournalKey(t *testing.T) {
	if got := toJournalKey("logs.run"); got != "HUBSIM_LOGS_RUN" {
		t.Fatalf("got %v", got)
	}
}
