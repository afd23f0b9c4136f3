package dispatcher

import (
	"time"

	"github.com/garyjia/approval-chain/internal/domain/chain"
)

// HandlerInfo contains handler metadata for debugging
type HandlerInfo struct {
	Identity string
	Position int
}

// Observation describes one completed dispatch
type Observation struct {
	Chain    string
	Policy   PolicyKind
	Outcome  chain.Kind
	Handler  string
	Steps    int
	Duration time.Duration
}

// Recorder receives one observation per dispatch
type Recorder interface {
	RecordDispatch(obs Observation)
}
