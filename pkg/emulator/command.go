package emulator

import "fmt"

// CommandPacket is a command packet that is sent to the
// emulator to control it.
type CommandPacket struct {
	Command Command
	Data    []byte
}

// Command is a command that is sent to the emulator to
// control it.
type Command int

// ResponsePacket is a response packet that is sent
// from the emulator to the client.
type ResponsePacket struct {
	Command Command
	Data    []byte
	Error   error
}

const (
	// CommandPause pauses the emulator.
	CommandPause Command = iota
	// CommandResume resumes the emulator.
	CommandResume
	// CommandStep executes a single instruction while paused.
	CommandStep
	// CommandReset resets the emulator.
	CommandReset
	// CommandSetSpeed sets the speed of the emulator. Data holds
	// the speed in tenths of a MHz as a single byte, 0 meaning
	// unthrottled.
	CommandSetSpeed
)

func (c Command) String() string {
	switch c {
	case CommandPause:
		return "pause"
	case CommandResume:
		return "resume"
	case CommandStep:
		return "step"
	case CommandReset:
		return "reset"
	case CommandSetSpeed:
		return "set speed"
	default:
		return fmt.Sprintf("command(%d)", int(c))
	}
}

// Apply performs the command on ctl and returns the response.
func (p CommandPacket) Apply(ctl Controller) ResponsePacket {
	resp := ResponsePacket{Command: p.Command}
	switch p.Command {
	case CommandPause:
		ctl.Pause()
	case CommandResume:
		ctl.Resume()
	case CommandStep:
		resp.Error = ctl.Step()
	case CommandReset:
		ctl.Reset()
	case CommandSetSpeed:
		if len(p.Data) != 1 {
			resp.Error = fmt.Errorf("emulator: %s expects 1 byte, got %d", p.Command, len(p.Data))
			break
		}
		ctl.SetSpeed(float64(p.Data[0]) / 10)
	default:
		resp.Error = fmt.Errorf("emulator: unknown %s", p.Command)
	}
	resp.Data = []byte(ctl.Status().String())
	return resp
}
