// Package handlers maps resolved intents to their Hindi responses. The
// mapping is an explicit table built at startup; response templates come from
// the intent registry and get their placeholders filled here.
package handlers

import (
	"fmt"
	log "log/slog"
	"strings"
	"time"

	"sahayak/internal/nlu"
)

// System is the slice of OS control the handlers need.
type System interface {
	AdjustVolume(deltaPercent int) error
	BatteryLevel() int
}

// Handler produces the spoken response for one classified utterance.
type Handler func(res nlu.Result) string

var hindiDays = [...]string{
	time.Sunday:    "रविवार",
	time.Monday:    "सोमवार",
	time.Tuesday:   "मंगलवार",
	time.Wednesday: "बुधवार",
	time.Thursday:  "गुरुवार",
	time.Friday:    "शुक्रवार",
	time.Saturday:  "शनिवार",
}

var hindiMonths = [...]string{
	"", "जनवरी", "फरवरी", "मार्च", "अप्रैल", "मई", "जून",
	"जुलाई", "अगस्त", "सितंबर", "अक्टूबर", "नवंबर", "दिसंबर",
}

const errorResponse = "माफ कीजिये, कुछ गड़बड़ हो गई।"

// Set owns the intent -> handler table plus the bits of state the responses
// need (last response for repeat, timer flag).
type Set struct {
	registry *nlu.Registry
	system   System
	now      func() time.Time

	handlers     map[string]Handler
	lastResponse string
	timerActive  bool
}

func New(registry *nlu.Registry, sys System) *Set {
	s := &Set{
		registry: registry,
		system:   sys,
		now:      time.Now,
	}
	s.handlers = map[string]Handler{
		"greeting":        s.respond("greeting", "नमस्ते"),
		"get_time":        s.getTime,
		"get_date":        s.getDate,
		"get_day":         s.getDay,
		"get_weather":     s.respond("get_weather", ""),
		"thanks":          s.respond("thanks", ""),
		"goodbye":         s.respond("goodbye", ""),
		"help":            s.respond("help", ""),
		"set_timer":       s.setTimer,
		"stop":            s.stop,
		nlu.IntentRepeat:  s.repeat,
		"battery":         s.battery,
		"volume_up":       s.volumeUp,
		"volume_down":     s.volumeDown,
		nlu.IntentUnknown: s.respond(nlu.IntentUnknown, "क्षमा करें?"),
	}
	return s
}

// Handle dispatches a classification to its handler and remembers the
// response so repeat can replay it. Unregistered intents fall through to the
// unknown handler.
func (s *Set) Handle(res nlu.Result) string {
	h, ok := s.handlers[res.Intent]
	if !ok {
		log.Warn("No handler for intent", "intent", res.Intent)
		h = s.handlers[nlu.IntentUnknown]
	}

	response := h(res)
	if res.Intent != nlu.IntentRepeat {
		s.lastResponse = response
	}
	return response
}

// TimerActive reports whether a set_timer command is pending a stop.
func (s *Set) TimerActive() bool { return s.timerActive }

// respond builds a handler that returns an intent's registry template as-is.
func (s *Set) respond(intent, fallback string) Handler {
	return func(nlu.Result) string {
		if r := s.registry.Response(intent); r != "" {
			return r
		}
		if fallback != "" {
			return fallback
		}
		return errorResponse
	}
}

func (s *Set) getTime(nlu.Result) string {
	now := s.now()
	hour := now.Hour()
	period := "सुबह"
	if hour >= 12 {
		period = "शाम"
	}
	switch {
	case hour == 0:
		hour = 12
	case hour > 12:
		hour -= 12
	}

	timeStr := fmt.Sprintf("%s %d बजकर %d मिनट", period, hour, now.Minute())
	return fill(s.registry.Response("get_time"), "{time}", timeStr)
}

func (s *Set) getDate(nlu.Result) string {
	now := s.now()
	dateStr := fmt.Sprintf("%d %s %d", now.Day(), hindiMonths[now.Month()], now.Year())
	return fill(s.registry.Response("get_date"), "{date}", dateStr)
}

func (s *Set) getDay(nlu.Result) string {
	return fill(s.registry.Response("get_day"), "{day}", hindiDays[s.now().Weekday()])
}

func (s *Set) setTimer(res nlu.Result) string {
	s.timerActive = true
	if d, ok := res.Entities["duration_str"].(string); ok {
		log.Info("Timer requested", "duration", d)
	}
	if r := s.registry.Response(nlu.IntentSetTimer); r != "" {
		return r
	}
	return errorResponse
}

func (s *Set) stop(nlu.Result) string {
	s.timerActive = false
	if r := s.registry.Response("stop"); r != "" {
		return r
	}
	return errorResponse
}

func (s *Set) repeat(nlu.Result) string {
	if s.lastResponse != "" {
		return s.lastResponse
	}
	return "कोई पिछला जवाब नहीं है।"
}

func (s *Set) battery(nlu.Result) string {
	level := s.system.BatteryLevel()
	return fill(s.registry.Response("battery"), "{battery}", fmt.Sprintf("%d", level))
}

func (s *Set) volumeUp(nlu.Result) string {
	if err := s.system.AdjustVolume(10); err != nil {
		log.Error("Volume up failed", "err", err)
		return "वॉल्यूम नहीं बढ़ा सका।"
	}
	return s.registry.Response("volume_up")
}

func (s *Set) volumeDown(nlu.Result) string {
	if err := s.system.AdjustVolume(-10); err != nil {
		log.Error("Volume down failed", "err", err)
		return "वॉल्यूम कम नहीं कर सका।"
	}
	return s.registry.Response("volume_down")
}

func fill(template, placeholder, value string) string {
	if template == "" {
		return errorResponse
	}
	return strings.ReplaceAll(template, placeholder, value)
}
