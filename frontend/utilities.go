package frontend

import (
	"net/http"
	"net/http/pprof"
	"sync/atomic"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/alpacahq/bizday/utils"
	"github.com/alpacahq/bizday/utils/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var Queryable uint32 // treated as bool

type HeartbeatMessage struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	GitHash   string `json:"git_hash"`
	Uptime    string `json:"uptime"`
	Calendars int    `json:"calendars"`
}

func NewUtilityAPIHandlers(startTime time.Time, calendars func() int) *utilityAPIHandlers {
	return &utilityAPIHandlers{startTime: startTime, calendars: calendars}
}

type utilityAPIHandlers struct {
	startTime time.Time
	calendars func() int
}

// Register adds the heartbeat and profiling endpoints to mux.
func (uah *utilityAPIHandlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("/heartbeat", uah.heartbeat)

	mux.HandleFunc("/pprof/", pprof.Index)
	mux.HandleFunc("/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/pprof/profile", pprof.Profile)
	mux.HandleFunc("/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/pprof/trace", pprof.Trace)
}

func (uah *utilityAPIHandlers) heartbeat(rw http.ResponseWriter, _ *http.Request) {
	msg := HeartbeatMessage{
		Status:  "queryable",
		Version: utils.Tag,
		GitHash: utils.GitHash,
		Uptime:  time.Since(uah.startTime).String(),
	}
	if uah.calendars != nil {
		msg.Calendars = uah.calendars()
	}

	rw.Header().Set("Content-Type", "application/json")
	if atomic.LoadUint32(&Queryable) > 0 {
		rw.WriteHeader(http.StatusOK)
	} else {
		msg.Status = "not queryable"
		rw.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(rw).Encode(msg); err != nil {
		log.Error("Failed to write heartbeat message - Error: %v", err)
	}
}
