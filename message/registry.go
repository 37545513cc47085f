package message

import "strconv"

var (
	nameToSignal = make(map[string]Signal)
	signalToName = make(map[Signal]string)
)

// registerSignal maps a display name to a Signal
func registerSignal(name string, s Signal) {
	nameToSignal[name] = s
	signalToName[s] = name
}

// SignalByName returns the Signal registered under name
func SignalByName(name string) (Signal, bool) {
	s, ok := nameToSignal[name]
	return s, ok
}

// SignalName returns the display name of s, or its number when unregistered
func SignalName(s Signal) string {
	if name, ok := signalToName[s]; ok {
		return name
	}
	return "Signal(" + strconv.Itoa(int(s)) + ")"
}

func init() {
	registerSignal("Started", Started)
	registerSignal("Stop", Stop)
	registerSignal("KeyDetect", KeyDetect)

	registerSignal("Timeout", Timeout)
	registerSignal("KeyScan", KeyScan)
	registerSignal("Key", Key)
	registerSignal("CreateSection", CreateSection)
	registerSignal("DeleteSection", DeleteSection)
	registerSignal("PaintLine", PaintLine)
	registerSignal("PaintRow", PaintRow)
	registerSignal("Flush", Flush)
}
