package trainer

// #region imports
import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/bossrl/go-bridge/internal/encounter"
)

// #endregion

// #region message-types

// MessageType is the wire message tag. Values match the trainer's enum and
// must not be renumbered.
type MessageType byte

const (
	// Bridge -> trainer
	MsgInitialize      MessageType = 0
	MsgGetAction       MessageType = 1
	MsgStoreTransition MessageType = 2
	// Trainer -> bridge
	MsgInitResponse   MessageType = 10
	MsgActionResponse MessageType = 11
	MsgTransitionAck  MessageType = 12
	MsgError          MessageType = 255
)

// #endregion message-types

// #region payloads

// InitResult is the trainer's response to Initialize.
type InitResult struct {
	Initialized      bool   `json:"initialized"`
	BossName         string `json:"boss_name"`
	ObservationSize  int    `json:"observation_size"`
	CheckpointLoaded bool   `json:"checkpoint_loaded"`
}

type initPayload struct {
	BossName         string `json:"boss_name"`
	ObservationSize  int    `json:"observation_size"`
	ActionSpaceShape []int  `json:"action_space_shape"`
	ObservationType  string `json:"observation_type"`
	VectorObsSize    int    `json:"vector_obs_size"`
	VisualWidth      int    `json:"visual_width"`
	VisualHeight     int    `json:"visual_height"`
}

type actionPayload struct {
	State any `json:"state"`
}

type actionResponse struct {
	Action []int `json:"action"`
}

type transitionPayload struct {
	State     any     `json:"state"`
	Action    []int   `json:"action"`
	Reward    float64 `json:"reward"`
	NextState any     `json:"next_state"`
	Done      bool    `json:"done"`
}

type transitionAck struct {
	Success bool `json:"success"`
}

type errorPayload struct {
	Error string `json:"error"`
}

// #endregion payloads

// #region client-struct

// Client speaks the trainer's framed socket protocol: a 4-byte big-endian
// length prefix covering one type byte plus a JSON payload. All calls are
// synchronous request/response pairs on a single connection, matching the
// one-at-a-time tick loop on this side.
type Client struct {
	conn    net.Conn
	timeout time.Duration
}

// #endregion client-struct

// #region constructor

// NewClient dials the trainer endpoint.
func NewClient(addr string, timeout time.Duration) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial trainer %s: %w", addr, err)
	}
	if tc, ok := conn.(*net.TCPConn); ok {
		tc.SetNoDelay(true)
	}
	return &Client{conn: conn, timeout: timeout}, nil
}

// NewClientWithConn wraps an existing connection. Used for testing over an
// in-memory pipe.
func NewClientWithConn(conn net.Conn, timeout time.Duration) *Client {
	return &Client{conn: conn, timeout: timeout}
}

// Close shuts the connection down.
func (c *Client) Close() error {
	return c.conn.Close()
}

// #endregion constructor

// #region initialize

// Initialize announces the active encounter's shape contract so the trainer
// can size or restore its policy.
func (c *Client) Initialize(desc encounter.Descriptor, actionShape []int) (InitResult, error) {
	obsSize := desc.VectorSize
	if desc.Kind == encounter.ObsHybrid {
		obsSize += desc.VisualWidth * desc.VisualHeight
	}
	payload := initPayload{
		BossName:         desc.BossName,
		ObservationSize:  obsSize,
		ActionSpaceShape: actionShape,
		ObservationType:  string(desc.Kind),
		VectorObsSize:    desc.VectorSize,
		VisualWidth:      desc.VisualWidth,
		VisualHeight:     desc.VisualHeight,
	}

	var result InitResult
	if err := c.call(MsgInitialize, payload, MsgInitResponse, &result); err != nil {
		return InitResult{}, fmt.Errorf("initialize: %w", err)
	}
	return result, nil
}

// #endregion initialize

// #region get-action

// GetAction sends an observation and returns the trainer's discrete action
// vector. state is either the flat vector or the hybrid vector+visual dict.
func (c *Client) GetAction(state any) ([]int, error) {
	var resp actionResponse
	if err := c.call(MsgGetAction, actionPayload{State: state}, MsgActionResponse, &resp); err != nil {
		return nil, fmt.Errorf("get action: %w", err)
	}
	return resp.Action, nil
}

// #endregion get-action

// #region store-transition

// StoreTransition hands one (s, a, r, s', done) tuple to the trainer.
func (c *Client) StoreTransition(state any, act []int, reward float64, next any, done bool) error {
	payload := transitionPayload{
		State:     state,
		Action:    act,
		Reward:    reward,
		NextState: next,
		Done:      done,
	}
	var ack transitionAck
	if err := c.call(MsgStoreTransition, payload, MsgTransitionAck, &ack); err != nil {
		return fmt.Errorf("store transition: %w", err)
	}
	if !ack.Success {
		return fmt.Errorf("store transition: trainer rejected the tuple")
	}
	return nil
}

// #endregion store-transition

// #region framing

func (c *Client) call(req MessageType, payload any, want MessageType, out any) error {
	if c.timeout > 0 {
		c.conn.SetDeadline(time.Now().Add(c.timeout))
	}
	if err := writeMessage(c.conn, req, payload); err != nil {
		return err
	}
	got, body, err := readMessage(c.conn)
	if err != nil {
		return err
	}
	if got == MsgError {
		var ep errorPayload
		if json.Unmarshal(body, &ep) == nil && ep.Error != "" {
			return fmt.Errorf("trainer error: %s", ep.Error)
		}
		return fmt.Errorf("trainer error")
	}
	if got != want {
		return fmt.Errorf("unexpected message type %d (want %d)", got, want)
	}
	return json.Unmarshal(body, out)
}

func writeMessage(w io.Writer, t MessageType, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	frame := make([]byte, 0, 5+len(body))
	frame = binary.BigEndian.AppendUint32(frame, uint32(1+len(body)))
	frame = append(frame, byte(t))
	frame = append(frame, body...)
	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

func readMessage(r io.Reader) (MessageType, []byte, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return 0, nil, fmt.Errorf("read length: %w", err)
	}
	length := binary.BigEndian.Uint32(header[:])
	if length < 1 {
		return 0, nil, fmt.Errorf("invalid frame length %d", length)
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, nil, fmt.Errorf("read body: %w", err)
	}
	return MessageType(buf[0]), buf[1:], nil
}

// #endregion framing
