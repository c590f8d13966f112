package contacts

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dfdavila2/workingWithDataInLWC/core"
	"github.com/dfdavila2/workingWithDataInLWC/module/toast"
	"github.com/dfdavila2/workingWithDataInLWC/pkg/ctypes"
	"github.com/dfdavila2/workingWithDataInLWC/pkg/uierr"
)

// create is the record-creation endpoint. Validation failures come back as
// a fieldErrors payload; a created record answers with its new id and raises
// a success toast.
func (m *Module) create(c *gin.Context) {
	var req CreateRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			ctypes.NewErrorResponse(ctypes.CodeBindingError, "error binding request", err.Error()))
		return
	}

	if fields := req.Validate(); fields != nil {
		c.JSON(http.StatusUnprocessableEntity, ctypes.FieldErrors(fields))
		return
	}

	contact := Contact{
		ID:        uuid.NewString(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Title:     req.Title,
		Phone:     req.Phone,
		Email:     req.Email,
		CreatedAt: time.Now().UTC(),
	}

	ctx := c.Request.Context()
	if err := m.store.Insert(ctx, contact); err != nil {
		m.logger.Error("contact insert failed", core.Field{Key: "error", Value: err})
		m.notify(ctx, toast.Error("Error creating record", err))
		c.JSON(http.StatusInternalServerError,
			ctypes.PageErrors(uierr.Reduce(err)...))
		return
	}

	if m.metrics != nil {
		m.metrics.ContactsCreated.Inc()
	}
	m.notify(ctx, toast.Success("Success", "Record created, ID: "+contact.ID))
	m.listSub.Refresh(ctx)

	c.JSON(http.StatusCreated, ctypes.NewResponse(ctypes.CodeOK, "contact created", gin.H{"id": contact.ID}))
}

// list backs the contact table: the full ordered set of contacts.
func (m *Module) list(c *gin.Context) {
	ctx := c.Request.Context()

	result := m.listSub.Refresh(ctx)
	if result.Failed() {
		// The refresh observer has already raised the error toast; reduce
		// here for the response body.
		c.JSON(http.StatusInternalServerError,
			ctypes.PageErrors(uierr.Reduce(result.Err)...))
		return
	}

	if m.metrics != nil {
		m.metrics.ContactFetches.Inc()
	}
	c.JSON(http.StatusOK, ctypes.NewResponse(ctypes.CodeOK, "ok", result.Data))
}

// get reads one contact back by id.
func (m *Module) get(c *gin.Context) {
	contact, err := m.store.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, ctypes.ErrorPayload{Message: "Contact not found"})
		return
	}
	if err != nil {
		m.logger.Error("contact get failed", core.Field{Key: "error", Value: err})
		c.JSON(http.StatusInternalServerError,
			ctypes.PageErrors(uierr.Reduce(err)...))
		return
	}

	c.JSON(http.StatusOK, ctypes.NewResponse(ctypes.CodeOK, "ok", contact))
}

// summary exposes the subscription-maintained contact count.
func (m *Module) summary(c *gin.Context) {
	c.JSON(http.StatusOK, ctypes.NewResponse(ctypes.CodeOK, "ok", gin.H{
		"count": m.count.Load(),
	}))
}
