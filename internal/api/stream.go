package api

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/system"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxControlSize = 4096
)

// Frame is one orbit stream message.
type Frame struct {
	Host          string           `json:"host"`
	Frame         uint64           `json:"frame"`
	Params        orbit.Params     `json:"params"`
	HabitableZone system.Zone      `json:"habitable_zone"`
	Positions     []orbit.Position `json:"positions"`
}

// Control is a client message changing the stream's time controls.
type Control struct {
	Action string  `json:"action"`
	Value  float64 `json:"value,omitempty"`
}

// Apply returns p changed by the control.
func (c Control) Apply(p orbit.Params) (orbit.Params, error) {
	switch strings.ToLower(c.Action) {
	case "play":
		return p.WithPaused(false), nil
	case "pause":
		return p.WithPaused(true), nil
	case "toggle":
		return p.TogglePause(), nil
	case "forward":
		return p.WithDirection(orbit.Forward), nil
	case "reverse":
		return p.WithDirection(orbit.Reverse), nil
	case "faster":
		return p.Faster(), nil
	case "slower":
		return p.Slower(), nil
	case "speed":
		return p.WithSpeed(c.Value), nil
	case "step":
		return p.StepForward(), nil
	case "step_back":
		return p.StepBackward(), nil
	case "real":
		return p.WithRealDistances(true), nil
	case "compact":
		return p.WithRealDistances(false), nil
	default:
		return p, fmt.Errorf("unknown action %q", c.Action)
	}
}

// parseStreamQuery reads speed, dir, real and fps.
func parseStreamQuery(q url.Values, defaultFPS int) (orbit.Params, int, error) {
	p := orbit.DefaultParams()
	fps := defaultFPS

	if raw := q.Get("speed"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return p, 0, fmt.Errorf("invalid speed %q", raw)
		}
		p = p.WithSpeed(v)
	}
	if raw := q.Get("dir"); raw != "" {
		var d orbit.Direction
		switch raw {
		case "1", "+1":
			d = orbit.Forward
		case "-1":
			d = orbit.Reverse
		default:
			if err := d.UnmarshalText([]byte(strings.ToLower(raw))); err != nil {
				return p, 0, err
			}
		}
		p = p.WithDirection(d)
	}
	if raw := q.Get("real"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return p, 0, fmt.Errorf("invalid real %q", raw)
		}
		p = p.WithRealDistances(v)
	}
	if raw := q.Get("fps"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return p, 0, fmt.Errorf("invalid fps %q", raw)
		}
		fps = min(v, MaxStreamFPS)
	}
	return p, fps, nil
}

func (s *Server) handleOrbitStream(w http.ResponseWriter, r *http.Request) {
	host := hostParam(r)
	d, err := s.state.System(host)
	if errors.Is(err, system.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	params, fps, err := parseStreamQuery(r.URL.Query(), s.cfg.StreamFPS)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade %s: %v", host, err)
		return
	}
	defer conn.Close()

	s.metrics.StreamOpened()
	defer s.metrics.StreamClosed()
	s.log.Debug("orbit stream opened for %s at %d fps", d.Name, fps)

	s.streamOrbits(conn, d, params, fps)
}

// streamOrbits owns the connection's clock until the client goes away.
func (s *Server) streamOrbits(conn *websocket.Conn, d *system.Descriptor, params orbit.Params, fps int) {
	clock := orbit.NewClock(d, params, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))

	controls := make(chan Control, 8)
	done := make(chan struct{})
	go s.readControls(conn, controls, done)

	send := func(positions []orbit.Position) error {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := conn.WriteJSON(Frame{
			Host:          d.Name,
			Frame:         clock.Frames(),
			Params:        params,
			HabitableZone: d.HabitableZone(params.RealDistances),
			Positions:     positions,
		})
		if err == nil {
			s.metrics.RecordFrame()
		}
		return err
	}

	if err := send(clock.Positions()); err != nil {
		return
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	last := time.Now()
	for {
		select {
		case <-done:
			return

		case c := <-controls:
			next, err := c.Apply(params)
			if err != nil {
				s.log.Debug("stream %s: %v", d.Name, err)
				continue
			}
			params = next

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if err := send(clock.Tick(dt, params)); err != nil {
				return
			}

		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (s *Server) readControls(conn *websocket.Conn, out chan<- Control, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(maxControlSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var c Control
		if err := conn.ReadJSON(&c); err != nil {
			var closeErr *websocket.CloseError
			if !errors.As(err, &closeErr) {
				s.log.Debug("stream read: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))
		select {
		case out <- c:
		default:
			// Drop controls the frame loop cannot keep up with.
		}
	}
}
