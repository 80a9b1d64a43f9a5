package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/heightview/internal/engine/input"
	"github.com/Faultbox/heightview/internal/engine/terrain"
	"github.com/Faultbox/heightview/internal/export"
	"github.com/Faultbox/heightview/internal/viewer"
)

type inbound struct {
	kind int
	data []byte
}

// session is one connected client. Its state is owned by the run goroutine;
// the reader and loader goroutines only hand data to it over channels.
type session struct {
	id     uint64
	conn   *websocket.Conn
	config Config
	log    *zap.Logger

	state  viewer.State
	loader *terrain.Loader
}

func newSession(id uint64, conn *websocket.Conn, cfg Config, log *zap.Logger) *session {
	return &session{
		id:     id,
		conn:   conn,
		config: cfg,
		log:    log,
		state:  viewer.NewState(cfg.Options),
		loader: terrain.NewLoader(cfg.Options.Mapping),
	}
}

// close unblocks run from another goroutine.
func (s *session) close() {
	_ = s.conn.Close()
}

func (s *session) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.loader.Close()
	defer s.conn.Close()

	if s.config.ReadLimit > 0 {
		s.conn.SetReadLimit(s.config.ReadLimit)
	}

	messages := make(chan inbound)
	readErr := make(chan error, 1)
	go func() {
		for {
			kind, data, err := s.conn.ReadMessage()
			if err != nil {
				readErr <- err
				return
			}
			select {
			case messages <- inbound{kind, data}:
			case <-ctx.Done():
				return
			}
		}
	}()

	loads := make(chan terrain.LoadResult)
	go func() {
		for {
			res, err := s.loader.Next(ctx)
			if err != nil {
				return
			}
			select {
			case loads <- res:
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := s.sendMesh(0, "cube", nil, terrain.BuildBox()); err != nil {
		s.log.Debug("initial mesh not sent", zap.Error(err))
		return
	}
	if err := s.sendFrame(); err != nil {
		return
	}

	for {
		var err error
		select {
		case msg := <-messages:
			err = s.handle(msg)
		case res := <-loads:
			err = s.applyLoad(res)
		case err = <-readErr:
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug("read failed", zap.Error(err))
			}
			return
		case <-ctx.Done():
			return
		}
		if err != nil {
			s.log.Debug("write failed", zap.Error(err))
			return
		}
		if s.state.Quit {
			s.closeNormal("quit")
			return
		}
	}
}

func (s *session) handle(msg inbound) error {
	switch msg.kind {
	case websocket.BinaryMessage:
		gen := s.loader.LoadBytes(fmt.Sprintf("upload-%d", s.id), msg.data)
		s.log.Info("heightmap upload", zap.Int("bytes", len(msg.data)), zap.Uint64("generation", gen))
		return nil

	case websocket.TextMessage:
		var e input.Event
		if err := json.Unmarshal(msg.data, &e); err != nil {
			return s.sendError(0, fmt.Errorf("decoding event: %w", err))
		}
		s.state = viewer.Reduce(s.state, e)
		if s.state.Err != nil {
			s.log.Debug("input rejected", zap.Stringer("event", e.Type), zap.Error(s.state.Err))
		}
		return s.sendFrame()
	}
	return nil
}

func (s *session) applyLoad(res terrain.LoadResult) error {
	if res.Err != nil {
		s.log.Warn("heightmap load failed", zap.Uint64("generation", res.Generation), zap.Error(res.Err))
		return s.sendError(res.Generation, res.Err)
	}

	s.state = s.state.WithMesh(viewer.SubjectTerrain, res.Mesh.VertexCount())
	s.log.Info("heightmap loaded",
		zap.Int("width", res.Heightmap.Width),
		zap.Int("height", res.Heightmap.Height),
		zap.Int("triangles", res.Mesh.TriangleCount()),
	)
	if err := s.sendMesh(res.Generation, res.Source, res.Heightmap, res.Mesh); err != nil {
		return err
	}
	return s.sendFrame()
}

func (s *session) sendFrame() error {
	var f viewer.Frame
	s.state, f = viewer.RenderFrame(s.state)
	return s.writeJSON(newFrameMessage(s.state, f))
}

func (s *session) sendMesh(gen uint64, source string, hm *terrain.Heightmap, mesh *terrain.Mesh) error {
	var glb bytes.Buffer
	if err := export.Write(&glb, mesh, source, true); err != nil {
		return s.sendError(gen, err)
	}

	b := mesh.Bounds()
	msg := MeshMessage{
		Type:       MessageMesh,
		Generation: gen,
		Source:     source,
		Triangles:  mesh.TriangleCount(),
		Min:        b.Min,
		Max:        b.Max,
	}
	if hm != nil {
		msg.Width, msg.Height = hm.Width, hm.Height
	}
	if err := s.writeJSON(msg); err != nil {
		return err
	}
	return s.write(websocket.BinaryMessage, glb.Bytes())
}

func (s *session) sendError(gen uint64, err error) error {
	return s.writeJSON(ErrorMessage{Type: MessageError, Error: err.Error(), Generation: gen})
}

func (s *session) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %T: %w", v, err)
	}
	return s.write(websocket.TextMessage, data)
}

func (s *session) write(kind int, data []byte) error {
	if s.config.WriteTimeout > 0 {
		_ = s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	}
	return s.conn.WriteMessage(kind, data)
}

func (s *session) closeNormal(reason string) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
	err := s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		s.log.Debug("close frame not sent", zap.Error(err))
	}
}
