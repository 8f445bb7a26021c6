package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"social-media-api/internal/service"

	"github.com/valyala/fastjson"
	"go.uber.org/zap"
)

type parsers struct {
	registerPool      fastjson.ParserPool
	loginPool         fastjson.ParserPool
	createMessagePool fastjson.ParserPool
	updateMessagePool fastjson.ParserPool
}

type handler struct {
	logger   *zap.SugaredLogger
	accounts *service.AccountService
	messages *service.MessageService
	parsers  parsers
}

// stringField extracts a string field from v, nil when the field is absent,
// null or not a string
func stringField(v *fastjson.Value, name string) *string {
	f := v.Get(name)
	if f == nil || f.Type() != fastjson.TypeString {
		return nil
	}

	b, err := f.StringBytes()
	if err != nil {
		return nil
	}

	s := string(b)
	return &s
}

// intField extracts a 64-bit integer field from v, nil when the field is
// absent, null or not an integer
func intField(v *fastjson.Value, name string) *int64 {
	f := v.Get(name)
	if f == nil || f.Type() != fastjson.TypeNumber {
		return nil
	}

	n, err := f.Int64()
	if err != nil {
		return nil
	}

	return &n
}

// pathID parses the named path parameter as a message or account id.
// On failure it writes a 400 response and reports false.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		http.Error(w, "Path parameter \""+name+"\" must be a 64-bit integer value", http.StatusBadRequest)
		return 0, false
	}

	return id, true
}

func (h *handler) writeJSON(w http.ResponseWriter, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		h.logger.Error(err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(payload)
	if err != nil {
		h.logger.Errorf("writing marshaled data to ResponseWriter: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *handler) writeCount(w http.ResponseWriter, count int64) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, err := w.Write([]byte(strconv.FormatInt(count, 10)))
	if err != nil {
		h.logger.Errorf("writing count to ResponseWriter: %v", err)
	}
}

// writeServiceError maps the service error kinds to their HTTP statuses;
// anything else is an internal failure
func (h *handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
	case errors.Is(err, service.ErrConflict):
		http.Error(w, "Username already exists", http.StatusConflict)
	case errors.Is(err, service.ErrUnauthorized):
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
	default:
		h.logger.Error(err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// register handles HTTP requests on "POST /register" endpoint
func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	parser := h.parsers.registerPool.Get()
	defer h.parsers.registerPool.Put(parser)
	v, _ := parser.ParseBytes(body)

	p := &service.AccountPayload{
		Username: stringField(v, "username"),
		Password: stringField(v, "password"),
	}

	account, err := h.accounts.Register(r.Context(), p)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, account)
}

// login handles HTTP requests on "POST /login" endpoint
func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	parser := h.parsers.loginPool.Get()
	defer h.parsers.loginPool.Put(parser)
	v, _ := parser.ParseBytes(body)

	p := &service.AccountPayload{
		Username: stringField(v, "username"),
		Password: stringField(v, "password"),
	}

	account, err := h.accounts.Login(r.Context(), p)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, account)
}

// createMessage handles HTTP requests on "POST /messages" endpoint
func (h *handler) createMessage(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	parser := h.parsers.createMessagePool.Get()
	defer h.parsers.createMessagePool.Put(parser)
	v, _ := parser.ParseBytes(body)

	p := &service.MessagePayload{
		PostedBy:    intField(v, "postedBy"),
		MessageText: stringField(v, "messageText"),
	}

	message, err := h.messages.Create(r.Context(), p)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, message)
}

// allMessages handles HTTP requests on "GET /messages" endpoint
func (h *handler) allMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.messages.All(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, messages)
}

// messageByID handles HTTP requests on "GET /messages/{messageId}" endpoint.
// A missing message is a 200 with an empty body, not an error.
func (h *handler) messageByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "messageId")
	if !ok {
		return
	}

	message, err := h.messages.ByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	if message == nil {
		w.WriteHeader(http.StatusOK)
		return
	}

	h.writeJSON(w, message)
}

// deleteMessage handles HTTP requests on "DELETE /messages/{messageId}" endpoint.
// The body is the number of rows deleted, or empty when nothing matched.
func (h *handler) deleteMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "messageId")
	if !ok {
		return
	}

	count, err := h.messages.Delete(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	if count == 0 {
		w.WriteHeader(http.StatusOK)
		return
	}

	h.writeCount(w, count)
}

// updateMessageText handles HTTP requests on "PATCH /messages/{messageId}" endpoint
func (h *handler) updateMessageText(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "messageId")
	if !ok {
		return
	}

	body, _ := io.ReadAll(r.Body)

	parser := h.parsers.updateMessagePool.Get()
	defer h.parsers.updateMessagePool.Put(parser)
	v, _ := parser.ParseBytes(body)

	p := &service.MessagePayload{
		MessageText: stringField(v, "messageText"),
	}

	count, err := h.messages.UpdateText(r.Context(), id, p)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeCount(w, count)
}

// messagesByAccount handles HTTP requests on "GET /accounts/{accountId}/messages" endpoint
func (h *handler) messagesByAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "accountId")
	if !ok {
		return
	}

	messages, err := h.messages.ByAccount(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, messages)
}
