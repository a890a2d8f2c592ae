package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/huynhanx03/gamekit/pkg/common/apperr"
	"github.com/huynhanx03/gamekit/pkg/common/http/response"
	"github.com/huynhanx03/gamekit/pkg/encoding"
	"github.com/huynhanx03/gamekit/pkg/inventory"
	"github.com/huynhanx03/gamekit/pkg/session"
	"github.com/huynhanx03/gamekit/pkg/unique"
)

const serviceName = "session"

// SessionHandler exposes session and inventory operations over HTTP.
// It is a debug surface; game clients drive the same operations
// through the session manager directly.
type SessionHandler struct {
	manager *session.Manager
	ids     *unique.SnowflakeNode
}

func NewSessionHandler(manager *session.Manager, ids *unique.SnowflakeNode) *SessionHandler {
	return &SessionHandler{manager: manager, ids: ids}
}

// Create starts a new session.
func (h *SessionHandler) Create(c *gin.Context) {
	sess := h.manager.Create()
	response.SuccessResponse(c, response.CodeSuccess, SessionResponse{
		SessionRef: sess.Ref(),
		Slots:      sess.Slots(),
	})
}

// Slots returns the two-slot view of a session's inventory.
func (h *SessionHandler) Slots(c *gin.Context) {
	sess, err := h.resolve(c.Param("ref"))
	if err != nil {
		code := response.CodeNotFound
		var appErr *apperr.AppError
		if errors.As(err, &appErr) && appErr.HTTPStatus == http.StatusBadRequest {
			code = response.CodeParamInvalid
		}
		response.ErrorResponse(c, code, response.ToErrorResponse(err))
		return
	}
	response.SuccessResponse(c, response.CodeSuccess, SessionResponse{
		SessionRef: sess.Ref(),
		Slots:      sess.Slots(),
	})
}

// Collect adds an item to a session's inventory.
func (h *SessionHandler) Collect(_ context.Context, req *CollectRequest) (SessionResponse, error) {
	sess, err := h.resolve(req.SessionRef)
	if err != nil {
		return SessionResponse{}, err
	}

	count := req.Count
	if count == 0 {
		count = 1
	}
	sess.Collect(inventory.Item{
		ID:    h.ids.Generate(),
		Name:  req.Name,
		Kind:  inventory.Kind(req.Kind),
		Count: count,
	})

	return SessionResponse{SessionRef: sess.Ref(), Slots: sess.Slots()}, nil
}

// Cycle rotates the main item to the tail of the inventory.
func (h *SessionHandler) Cycle(_ context.Context, req *SessionRequest) (CycleResponse, error) {
	sess, err := h.resolve(req.SessionRef)
	if err != nil {
		return CycleResponse{}, err
	}

	main, rotated := sess.CycleNext()
	return CycleResponse{Rotated: rotated, Main: main, Slots: sess.Slots()}, nil
}

// Drop removes and returns the main item.
func (h *SessionHandler) Drop(_ context.Context, req *SessionRequest) (DropResponse, error) {
	sess, err := h.resolve(req.SessionRef)
	if err != nil {
		return DropResponse{}, err
	}

	item, err := sess.Drop()
	if err != nil {
		return DropResponse{}, apperr.NewError(serviceName, response.CodeParamInvalid, "inventory "+apperr.MsgEmpty, http.StatusBadRequest, err)
	}
	return DropResponse{Dropped: item, Slots: sess.Slots()}, nil
}

// Resume brings an ended session back from its persisted snapshot.
func (h *SessionHandler) Resume(ctx context.Context, req *SessionRequest) (SessionResponse, error) {
	id, err := encoding.Base62Decode(req.SessionRef)
	if err != nil {
		return SessionResponse{}, apperr.NewError(serviceName, response.CodeParamInvalid, "ref invalid", http.StatusBadRequest, err)
	}

	sess, err := h.manager.Resume(ctx, id)
	if err != nil {
		if err == session.ErrSessionNotFound {
			return SessionResponse{}, apperr.NewError(serviceName, response.CodeNotFound, apperr.MsgNotFound, http.StatusNotFound, err)
		}
		return SessionResponse{}, apperr.MapError(serviceName, err, response.CodeInternalServer, apperr.MsgLoadFailed, http.StatusInternalServerError)
	}
	return SessionResponse{SessionRef: sess.Ref(), Slots: sess.Slots()}, nil
}

// End closes a session, persisting its final snapshot.
func (h *SessionHandler) End(ctx context.Context, req *SessionRequest) (EndResponse, error) {
	sess, err := h.resolve(req.SessionRef)
	if err != nil {
		return EndResponse{}, err
	}

	items := sess.Count()
	if err := h.manager.End(ctx, sess.ID()); err != nil {
		return EndResponse{}, apperr.MapError(serviceName, err, response.CodeInternalServer, apperr.MsgSaveFailed, http.StatusInternalServerError)
	}
	return EndResponse{SessionRef: sess.Ref(), Items: items}, nil
}

func (h *SessionHandler) resolve(ref string) (*session.Session, error) {
	id, err := encoding.Base62Decode(ref)
	if err != nil {
		return nil, apperr.NewError(serviceName, response.CodeParamInvalid, "ref invalid", http.StatusBadRequest, err)
	}
	sess, ok := h.manager.Get(id)
	if !ok {
		return nil, apperr.NewError(serviceName, response.CodeNotFound, apperr.MsgNotFound, http.StatusNotFound, session.ErrSessionNotFound)
	}
	return sess, nil
}
