// Package handler exposes the query/mutation API over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/mcwaffles/concord/internal/model"
	"github.com/mcwaffles/concord/internal/service"
)

// request carries an operation name plus its typed arguments. POST sends it
// as a JSON body, GET as query parameters.
type request struct {
	Operation       string `json:"operation"`
	Token           string `json:"token"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
	ChannelID       string `json:"channelId"`
	MessageID       string `json:"messageId"`
	Message         string `json:"message"`
	Name            string `json:"name"`
	WithMessages    bool   `json:"withMessages"`
	WithAuthor      bool   `json:"withAuthor"`
}

type apiError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Error kinds surfaced in the response payload.
const (
	kindAuthentication = "authentication"
	kindAuthorization  = "authorization"
	kindValidation     = "validation"
	kindInternal       = "internal"
)

var errInvalidArgument = errors.New("invalid argument")

// API dispatches the recognized operations. Domain failures come back as a
// typed error payload with HTTP 200, the way the original query endpoint
// reported them; only an unreadable request gets a 4xx.
func API(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeRequest(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]apiError{
				"error": {Kind: kindValidation, Message: "malformed request"},
			})
			return
		}

		data, err := dispatch(r, svc, req)
		if err != nil {
			writeJSON(w, http.StatusOK, map[string]apiError{"error": errorPayload(err)})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"data": data})
	}
}

func decodeRequest(r *http.Request) (request, error) {
	var req request

	switch r.Method {
	case http.MethodPost:
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return request{}, fmt.Errorf("internal/handler: decode body: %w", err)
		}
	case http.MethodGet:
		q := r.URL.Query()
		req = request{
			Operation:       q.Get("operation"),
			Token:           q.Get("token"),
			Username:        q.Get("username"),
			Password:        q.Get("password"),
			PasswordConfirm: q.Get("passwordConfirm"),
			ChannelID:       q.Get("channelId"),
			MessageID:       q.Get("messageId"),
			Message:         q.Get("message"),
			Name:            q.Get("name"),
			WithMessages:    q.Get("withMessages") == "true",
			WithAuthor:      q.Get("withAuthor") == "true",
		}
	}

	return req, nil
}

func dispatch(r *http.Request, svc *service.Service, req request) (any, error) {
	ctx := r.Context()

	switch req.Operation {
	case "channels":
		token, err := parseID("token", req.Token)
		if err != nil {
			return nil, err
		}
		return svc.Channels(ctx, token)

	case "getChannel":
		token, err := parseID("token", req.Token)
		if err != nil {
			return nil, err
		}
		channelID, err := parseID("channelId", req.ChannelID)
		if err != nil {
			return nil, err
		}
		channel, err := svc.GetChannel(ctx, token, channelID)
		if err != nil || channel == nil {
			return nil, err
		}
		if req.WithMessages {
			channel.Messages, err = svc.ChannelMessages(ctx, channel.ID)
			if err != nil {
				return nil, err
			}
			if req.WithAuthor {
				if err := svc.Authors(ctx, channel.Messages); err != nil {
					return nil, err
				}
			}
		}
		return channel, nil

	case "getMessage":
		token, err := parseID("token", req.Token)
		if err != nil {
			return nil, err
		}
		messageID, err := parseID("messageId", req.MessageID)
		if err != nil {
			return nil, err
		}
		message, err := svc.GetMessage(ctx, token, messageID)
		if err != nil || message == nil {
			return nil, err
		}
		if req.WithAuthor {
			single := []model.Message{*message}
			if err := svc.Authors(ctx, single); err != nil {
				return nil, err
			}
			message = &single[0]
		}
		return message, nil

	case "createUser":
		userID, err := svc.Register(ctx, req.Username, req.Password, req.PasswordConfirm)
		if err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "user signed up",
			slog.String("username", req.Username))
		return userID, nil

	case "signIn":
		token, err := svc.SignIn(ctx, req.Username, req.Password)
		if err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "user logged in",
			slog.String("username", req.Username))
		return token, nil

	case "sendMessage":
		token, err := parseID("token", req.Token)
		if err != nil {
			return nil, err
		}
		channelID, err := parseID("channelId", req.ChannelID)
		if err != nil {
			return nil, err
		}
		return svc.SendMessage(ctx, token, channelID, req.Message)

	case "updateMessage":
		token, err := parseID("token", req.Token)
		if err != nil {
			return nil, err
		}
		messageID, err := parseID("messageId", req.MessageID)
		if err != nil {
			return nil, err
		}
		return svc.UpdateMessage(ctx, token, messageID, req.Message)

	case "deleteMessage":
		token, err := parseID("token", req.Token)
		if err != nil {
			return nil, err
		}
		messageID, err := parseID("messageId", req.MessageID)
		if err != nil {
			return nil, err
		}
		return svc.DeleteMessage(ctx, token, messageID)

	case "createChannel":
		token, err := parseID("token", req.Token)
		if err != nil {
			return nil, err
		}
		return svc.CreateChannel(ctx, token, req.Name)

	default:
		return nil, fmt.Errorf("%w: unknown operation %q", errInvalidArgument, req.Operation)
	}
}

func parseID(name, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("%w: %s", errInvalidArgument, name)
	}
	return id, nil
}

func errorPayload(err error) apiError {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return apiError{Kind: kindAuthentication, Message: err.Error()}
	case errors.Is(err, service.ErrNotAuthorized):
		return apiError{Kind: kindAuthorization, Message: err.Error()}
	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrMissingField),
		errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, service.ErrEmptyChannelName),
		errors.Is(err, errInvalidArgument):
		return apiError{Kind: kindValidation, Message: err.Error()}
	default:
		log.Printf("internal/handler: operation failed: %v", err)
		return apiError{Kind: kindInternal, Message: "internal error"}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("internal/handler: failed to encode response: %v", err)
	}
}
