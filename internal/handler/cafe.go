package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avelina-cafes/cafewifi/internal/config"
	"github.com/avelina-cafes/cafewifi/internal/form"
	"github.com/avelina-cafes/cafewifi/internal/middleware"
	"github.com/avelina-cafes/cafewifi/internal/model"
	"github.com/avelina-cafes/cafewifi/internal/repository"
	"github.com/avelina-cafes/cafewifi/internal/view"
)

// CafeHandler serves the directory pages: listing, detail, and the
// add/edit/delete forms. Each form handler is one GET+POST state
// machine: GET shows the form, POST validates and either mutates and
// redirects or re-renders with field errors.
type CafeHandler struct {
	Cfg   config.Config
	Cafes *repository.CafeRepo
}

func NewCafeHandler(cfg config.Config, cafes *repository.CafeRepo) *CafeHandler {
	return &CafeHandler{Cfg: cfg, Cafes: cafes}
}

// cafeID parses the :id route param. Anything non-numeric is treated
// the same as a missing café.
func cafeID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, echo.ErrNotFound
	}
	return id, nil
}

// Index lists every café.
func (h *CafeHandler) Index(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cafes, err := h.Cafes.List(ctx)
	if err != nil {
		return err
	}
	user, _ := middleware.CurrentUser(c)
	return c.Render(http.StatusOK, "index", view.IndexPage{
		Base:  view.NewBase(c, "Cafés", user),
		Cafes: cafes,
	})
}

// Show renders one café's detail page, with the embedded map when a
// maps key is configured.
func (h *CafeHandler) Show(c echo.Context) error {
	id, err := cafeID(c)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cafe, err := h.Cafes.GetByID(ctx, id)
	if errors.Is(err, repository.ErrCafeNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	user, _ := middleware.CurrentUser(c)
	return c.Render(http.StatusOK, "cafe",
		view.NewCafePage(view.NewBase(c, cafe.Name, user), cafe, h.Cfg.MapsAPIKey))
}

// Add creates a café. On success the visitor lands on the new café's
// detail page.
func (h *CafeHandler) Add(c echo.Context) error {
	f := &form.CafeForm{}
	var errs form.Errors

	if c.Request().Method == http.MethodPost {
		values, err := c.FormParams()
		if err != nil {
			return echo.ErrBadRequest
		}
		f, errs = form.DecodeCafeForm(values)
		if len(errs) == 0 {
			var cafe model.Cafe
			f.Apply(&cafe)

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			err := h.Cafes.Create(ctx, &cafe)
			switch {
			case errors.Is(err, repository.ErrCafeNameExists):
				view.AddFlash(c, "A cafe with this name already exists", "danger")
			case err != nil:
				return err
			default:
				return view.Redirect(c, http.StatusFound, fmt.Sprintf("/cafe/%d", cafe.ID))
			}
		}
	}

	user, _ := middleware.CurrentUser(c)
	return c.Render(http.StatusOK, "form", view.FormPage{
		Base:    view.NewBase(c, "Add cafe", user),
		Heading: "Add cafe",
		Action:  "/cafe/add",
		Fields:  view.CafeFields(f, errs),
		Buttons: []view.Button{{Label: "Add cafe"}},
	})
}

// Edit updates a café. The form is prefilled from the stored entity
// only on the initial GET; after a failed submit the visitor's
// in-progress edits stay on screen instead of being clobbered.
func (h *CafeHandler) Edit(c echo.Context) error {
	id, err := cafeID(c)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cafe, err := h.Cafes.GetByID(ctx, id)
	if errors.Is(err, repository.ErrCafeNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}

	var f *form.CafeForm
	var errs form.Errors
	if c.Request().Method == http.MethodPost {
		values, err := c.FormParams()
		if err != nil {
			return echo.ErrBadRequest
		}
		f, errs = form.DecodeCafeForm(values)
		if len(errs) == 0 {
			f.Apply(cafe)
			err := h.Cafes.Update(ctx, cafe)
			switch {
			case errors.Is(err, repository.ErrCafeNameExists):
				view.AddFlash(c, "A cafe with this name already exists", "danger")
			case err != nil:
				return err
			default:
				return view.Redirect(c, http.StatusFound, fmt.Sprintf("/cafe/%d", cafe.ID))
			}
		}
	} else {
		f = form.CafeFormFromCafe(cafe)
	}

	user, _ := middleware.CurrentUser(c)
	return c.Render(http.StatusOK, "form", view.FormPage{
		Base:    view.NewBase(c, "Edit cafe", user),
		Heading: "Edit cafe",
		Action:  fmt.Sprintf("/cafe/%d/edit", id),
		Fields:  view.CafeFields(f, errs),
		Buttons: []view.Button{{Label: "Apply changes"}},
	})
}

// Delete asks for confirmation before removing a café. Confirm
// deletes and goes to the list; cancel goes back to the detail page
// untouched.
func (h *CafeHandler) Delete(c echo.Context) error {
	id, err := cafeID(c)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cafe, err := h.Cafes.GetByID(ctx, id)
	if errors.Is(err, repository.ErrCafeNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}

	if c.Request().Method == http.MethodPost {
		values, err := c.FormParams()
		if err != nil {
			return echo.ErrBadRequest
		}
		switch {
		case values.Get("submit_delete") != "":
			if err := h.Cafes.Delete(ctx, id); err != nil {
				return err
			}
			return view.Redirect(c, http.StatusFound, "/")
		case values.Get("submit_cancel") != "":
			return view.Redirect(c, http.StatusFound, fmt.Sprintf("/cafe/%d", id))
		}
	}

	user, _ := middleware.CurrentUser(c)
	return c.Render(http.StatusOK, "form", view.FormPage{
		Base:    view.NewBase(c, "Delete cafe", user),
		Heading: fmt.Sprintf("Delete cafe %q?", cafe.Name),
		Action:  fmt.Sprintf("/cafe/%d/delete", id),
		Buttons: []view.Button{
			{Name: "submit_delete", Label: "Delete"},
			{Name: "submit_cancel", Label: "Cancel"},
		},
	})
}
