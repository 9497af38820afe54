package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/magicace/enquiry-api/internal/form"
	"github.com/magicace/enquiry-api/pkg/httpclient"
)

const formPath = "/enquiry"

// FormHandler serves the server-rendered enquiry form. Each request gets a
// fresh form, so a page reload starts over in the editing state.
type FormHandler struct {
	endpoint string
	client   httpclient.Client
}

// NewFormHandler creates a form handler that submits to endpoint
func NewFormHandler(endpoint string, client httpclient.Client) *FormHandler {
	return &FormHandler{
		endpoint: endpoint,
		client:   client,
	}
}

// ShowForm handles GET /enquiry
func (h *FormHandler) ShowForm(c *gin.Context) {
	h.render(c, form.New(h.endpoint, h.client))
}

// SubmitForm handles POST /enquiry from a browser form post
func (h *FormHandler) SubmitForm(c *gin.Context) {
	f := form.New(h.endpoint, h.client)
	f.SetValues(form.Values{
		Email:   c.PostForm("email"),
		Message: c.PostForm("message"),
	})

	// Failures are logged by the form and shown as its root error
	if err := f.Submit(c.Request.Context()); err != nil {
		attachError(c, err)
	}

	h.render(c, f)
}

func (h *FormHandler) render(c *gin.Context, f *form.Form) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Header("Cache-Control", "no-store")
	c.Status(http.StatusOK)
	if err := f.Render(c.Writer, formPath); err != nil {
		attachError(c, err)
	}
}
