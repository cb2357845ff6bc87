package controllers

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/delivery/http/middleware"
	"eventregistration/internal/domain"
)

// multipartOverhead is what the form fields and part headers may add on top of
// the largest receipt accepted.
const multipartOverhead = 1 << 20

// RegistrationRequest is the JSON body accepted by the registration routes.
// Receipts can only be attached with multipart/form-data.
type RegistrationRequest struct {
	EventID       string `json:"event_id"`
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"payment_method"`
}

// RegistrationResponse is the data of a successful submission.
type RegistrationResponse struct {
	Registration *domain.Registration `json:"registration"`
	Message      string               `json:"message"`
	HandoffURL   string               `json:"handoff_url"`
}

type RegistrationController struct {
	Logger          *slog.Logger
	Service         domain.RegistrationService
	MaxReceiptBytes int64
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService, maxReceiptBytes int64) *RegistrationController {
	return &RegistrationController{
		Logger:          logger,
		Service:         svc,
		MaxReceiptBytes: maxReceiptBytes,
	}
}

// SubmitForEvent godoc
// @Summary Register for an event
// @Description Validates, stores the optional receipt, persists a pending registration and returns the WhatsApp handoff link.
// @Tags registrations
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param full_name formData string true "Full name"
// @Param phone formData string true "Phone"
// @Param payment_method formData string false "pix (default) or in_person"
// @Param receipt formData file false "Payment receipt (PIX only)"
// @Success 201 {object} controllers.Envelope "data is RegistrationResponse"
// @Failure 400 {object} controllers.Envelope "error.code: bad_request"
// @Failure 404 {object} controllers.Envelope "error.code: not_found"
// @Failure 409 {object} controllers.Envelope "error.code: conflict"
// @Failure 502 {object} controllers.Envelope "error.code: upload_failed"
// @Failure 503 {object} controllers.Envelope "error.code: persistence_failed"
// @Router /events/{eventID}/registrations [post]
func (c *RegistrationController) SubmitForEvent(w http.ResponseWriter, r *http.Request) {
	c.submit(w, r, r.PathValue("eventID"), true)
}

// Submit godoc
// @Summary Register for the selected event
// @Description Same as POST /events/{eventID}/registrations with the event taken from the event_id field.
// @Tags registrations
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param event_id formData string true "Event ID"
// @Param full_name formData string true "Full name"
// @Param phone formData string true "Phone"
// @Param payment_method formData string false "pix (default) or in_person"
// @Param receipt formData file false "Payment receipt (PIX only)"
// @Success 201 {object} controllers.Envelope "data is RegistrationResponse"
// @Failure 400 {object} controllers.Envelope "error.code: bad_request"
// @Failure 409 {object} controllers.Envelope "error.code: conflict"
// @Failure 502 {object} controllers.Envelope "error.code: upload_failed"
// @Failure 503 {object} controllers.Envelope "error.code: persistence_failed"
// @Router /registrations [post]
func (c *RegistrationController) Submit(w http.ResponseWriter, r *http.Request) {
	c.submit(w, r, "", false)
}

func (c *RegistrationController) submit(w http.ResponseWriter, r *http.Request, pathEventID string, fromPath bool) {
	in, ok := c.readInput(w, r)
	if !ok {
		return
	}
	if fromPath {
		in = in.WithEventID(pathEventID)
	}

	sessionKey, ok := middleware.SessionKeyFromContext(r.Context())
	if !ok {
		sessionKey = r.RemoteAddr
	}

	res, err := c.Service.Submit(r.Context(), sessionKey, in)
	if err != nil {
		c.writeSubmitError(w, r, err, fromPath)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, Envelope{
		Data: RegistrationResponse{
			Registration: res.Registration,
			Message:      res.Message,
			HandoffURL:   res.HandoffURL,
		},
		Notice:     &noticeSuccess,
		Navigation: NavigationShowSuccessResetForm,
	})
}

func (c *RegistrationController) readInput(w http.ResponseWriter, r *http.Request) (domain.RegistrationInput, bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var req RegistrationRequest
		if !helpers.DecodeJSON(w, r, &req) {
			return domain.RegistrationInput{}, false
		}
		return domain.NewRegistrationInput(req.EventID).
			WithFullName(req.FullName).
			WithPhone(req.Phone).
			WithPaymentMethod(domain.PaymentMethod(req.PaymentMethod)), true
	}

	r.Body = http.MaxBytesReader(w, r.Body, c.MaxReceiptBytes+multipartOverhead)
	if err := r.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeFieldError(w, http.StatusRequestEntityTooLarge, "receipt", "receipt is too large")
			return domain.RegistrationInput{}, false
		}
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid form: "+err.Error())
		return domain.RegistrationInput{}, false
	}

	in := domain.NewRegistrationInput(r.FormValue("event_id")).
		WithFullName(r.FormValue("full_name")).
		WithPhone(r.FormValue("phone")).
		WithPaymentMethod(domain.PaymentMethod(r.FormValue("payment_method")))

	receipt, err := readReceipt(r)
	if err != nil {
		c.Logger.WarnContext(r.Context(), "read receipt failed", "err", err)
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "could not read receipt")
		return domain.RegistrationInput{}, false
	}
	return in.WithReceipt(receipt), true
}

// readReceipt returns the uploaded receipt, or nil when the form has none.
func readReceipt(r *http.Request) (*domain.ReceiptFile, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, header, err := r.FormFile("receipt")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(header.Filename))); byExt != "" {
			contentType = byExt
		} else if len(data) > 0 {
			contentType = http.DetectContentType(data)
		}
	}
	return &domain.ReceiptFile{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

func (c *RegistrationController) writeSubmitError(w http.ResponseWriter, r *http.Request, err error, fromPath bool) {
	var (
		verr *domain.ValidationError
		uerr *domain.UploadError
		perr *domain.PersistenceError
	)
	switch {
	case errors.As(err, &verr):
		// An unknown event in the URL means the page is stale: send the user back to the list.
		if fromPath && verr.HasField("event_id") {
			helpers.WriteJSON(w, http.StatusNotFound, Envelope{
				Error:      &helpers.APIError{Code: helpers.ErrCodeNotFound, Message: "event not found"},
				Navigation: NavigationRedirectEventList,
			})
			return
		}
		notice := Notice{Title: "Erro na inscrição", Description: strings.Join(verr.Messages(), "; ")}
		if verr.HasField("full_name") || verr.HasField("phone") {
			notice = noticeRequired
		}
		helpers.WriteJSON(w, http.StatusBadRequest, Envelope{
			Error:  &helpers.APIError{Code: helpers.ErrCodeBadRequest, Message: verr.Error(), Fields: fieldNames(verr)},
			Notice: &notice,
		})
	case errors.Is(err, domain.ErrSubmissionInProgress):
		helpers.WriteJSON(w, http.StatusConflict, Envelope{
			Error: &helpers.APIError{Code: helpers.ErrCodeConflict, Message: err.Error()},
		})
	case errors.As(err, &uerr):
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSON(w, http.StatusBadGateway, Envelope{
			Error:  &helpers.APIError{Code: helpers.ErrCodeUploadFailed, Message: "receipt upload failed"},
			Notice: &noticeFailure,
		})
	case errors.As(err, &perr):
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSON(w, http.StatusServiceUnavailable, Envelope{
			Error:  &helpers.APIError{Code: helpers.ErrCodePersistenceFailed, Message: "registration could not be saved"},
			Notice: &noticeFailure,
		})
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSON(w, http.StatusInternalServerError, Envelope{
			Error:  &helpers.APIError{Code: helpers.ErrCodeInternalError, Message: "internal error"},
			Notice: &noticeFailure,
		})
	}
}

func writeFieldError(w http.ResponseWriter, status int, field, message string) {
	helpers.WriteJSON(w, status, Envelope{
		Error:  &helpers.APIError{Code: helpers.ErrCodeBadRequest, Message: message, Fields: []string{field}},
		Notice: &Notice{Title: "Erro na inscrição", Description: message},
	})
}

func fieldNames(verr *domain.ValidationError) []string {
	names := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		names = append(names, f.Field)
	}
	return names
}
