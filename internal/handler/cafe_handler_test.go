package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelina-cafes/cafewifi/internal/model"
	"github.com/avelina-cafes/cafewifi/internal/repository"
)

func TestIndexListsEveryCafe(t *testing.T) {
	app := newTestApp(t, "h_index")
	app.seedCafe(t, sampleCafe())
	app.seedCafe(t, &model.Cafe{Name: "Monocle", MapURL: "https://m.example.com", ImgURL: "https://i.example.com", Location: "Marylebone"})

	rec := app.client(t).get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Prufrock")
	assert.Contains(t, body, "Monocle")
}

func TestShowCafeDetail(t *testing.T) {
	app := newTestApp(t, "h_show")
	cafe := app.seedCafe(t, sampleCafe())

	rec := app.client(t).get(fmt.Sprintf("/cafe/%d", cafe.ID))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Prufrock")
	assert.Contains(t, body, "£3.05")
}

func TestShowCafeNotFound(t *testing.T) {
	app := newTestApp(t, "h_show404")
	cl := app.client(t)

	rec := cl.get("/cafe/999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	// rendered as a page, not JSON
	assert.Contains(t, rec.Body.String(), "Back to the cafés")

	rec = cl.get("/cafe/not-a-number")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddCafeRoundTrip(t *testing.T) {
	app := newTestApp(t, "h_add")
	app.seedUser(t, "elaine@example.com", "correct horse", "Elaine")
	cl := app.client(t)
	cl.login("elaine@example.com", "correct horse")

	want := sampleCafe()
	rec := cl.submit("/cafe/add", cafeFormValues(want, "3.05"))
	require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())

	loc := rec.Header().Get(echo.HeaderLocation)
	assert.Regexp(t, `^/cafe/\d+$`, loc)

	got, err := app.cafes.GetByName(context.Background(), "Prufrock")
	require.NoError(t, err)
	want.ID = got.ID
	assert.Equal(t, want, got, "stored café should match the submission, price in canonical form")

	// the redirect target renders the new café
	detail := cl.get(loc)
	require.Equal(t, http.StatusOK, detail.Code)
	assert.Contains(t, detail.Body.String(), "Prufrock")
}

func TestAddCafeValidationReShowsForm(t *testing.T) {
	app := newTestApp(t, "h_addval")
	app.seedUser(t, "elaine@example.com", "correct horse", "Elaine")
	cl := app.client(t)
	cl.login("elaine@example.com", "correct horse")

	values := cafeFormValues(sampleCafe(), "a lot")
	values.Set("name", "")
	rec := cl.submit("/cafe/add", values)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "This field is required.")
	assert.Contains(t, body, "Not a valid decimal value.")
	// the visitor's other input survives the re-render
	assert.Contains(t, body, "Leather Lane")

	cafes, err := app.cafes.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cafes, "nothing may be created on a failed submit")
}

func TestAddCafeDuplicateNameWarns(t *testing.T) {
	app := newTestApp(t, "h_adddup")
	app.seedUser(t, "elaine@example.com", "correct horse", "Elaine")
	app.seedCafe(t, sampleCafe())
	cl := app.client(t)
	cl.login("elaine@example.com", "correct horse")

	rec := cl.submit("/cafe/add", cafeFormValues(sampleCafe(), "3.05"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "A cafe with this name already exists")

	cafes, err := app.cafes.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, cafes, 1)
}

func TestEditCafePrefillsOnlyOnGet(t *testing.T) {
	app := newTestApp(t, "h_editpre")
	app.seedUser(t, "elaine@example.com", "correct horse", "Elaine")
	cafe := app.seedCafe(t, sampleCafe())
	cl := app.client(t)
	cl.login("elaine@example.com", "correct horse")

	editPath := fmt.Sprintf("/cafe/%d/edit", cafe.ID)

	// GET prefills from the stored entity, price without the symbol
	rec := cl.get(editPath)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `value="Prufrock"`)
	assert.Contains(t, body, `value="3.05"`)
	assert.Contains(t, body, `value="20-30" selected`)

	// a failed POST keeps the visitor's edits, not the stored values
	values := cafeFormValues(cafe, "3.05")
	values.Set("location", "Farringdon")
	values.Set("map_url", "not a url")
	rec = cl.submit(editPath, values)
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Contains(t, body, "Invalid URL.")
	assert.Contains(t, body, `value="Farringdon"`)
	assert.NotContains(t, body, `value="Leather Lane"`)

	// and the entity is untouched
	stored, err := app.cafes.GetByID(context.Background(), cafe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Leather Lane", stored.Location)
}

func TestEditCafeUpdates(t *testing.T) {
	app := newTestApp(t, "h_edit")
	app.seedUser(t, "elaine@example.com", "correct horse", "Elaine")
	cafe := app.seedCafe(t, sampleCafe())
	cl := app.client(t)
	cl.login("elaine@example.com", "correct horse")

	values := cafeFormValues(cafe, "2.5")
	values.Set("location", "Farringdon")
	values.Del("has_wifi")
	rec := cl.submit(fmt.Sprintf("/cafe/%d/edit", cafe.ID), values)
	require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())
	assert.Equal(t, fmt.Sprintf("/cafe/%d", cafe.ID), rec.Header().Get(echo.HeaderLocation))

	stored, err := app.cafes.GetByID(context.Background(), cafe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Farringdon", stored.Location)
	assert.Equal(t, "£2.50", stored.CoffeePrice)
	assert.False(t, stored.HasWifi, "unchecked box clears the flag")
	assert.True(t, stored.HasSockets)
}

func TestDeleteCafeCancelAndConfirm(t *testing.T) {
	app := newTestApp(t, "h_delete")
	app.seedUser(t, "elaine@example.com", "correct horse", "Elaine")
	cafe := app.seedCafe(t, sampleCafe())
	cl := app.client(t)
	cl.login("elaine@example.com", "correct horse")

	deletePath := fmt.Sprintf("/cafe/%d/delete", cafe.ID)

	// the confirmation page names the café and offers both buttons
	rec := cl.get(deletePath)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Prufrock")
	assert.Contains(t, rec.Body.String(), `name="submit_cancel"`)

	// cancel: back to the detail page, nothing deleted
	rec = cl.submit(deletePath, url.Values{"submit_cancel": {"1"}})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, fmt.Sprintf("/cafe/%d", cafe.ID), rec.Header().Get(echo.HeaderLocation))
	_, err := app.cafes.GetByID(context.Background(), cafe.ID)
	require.NoError(t, err)

	// confirm: gone, and the list no longer shows it
	rec = cl.submit(deletePath, url.Values{"submit_delete": {"1"}})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	_, err = app.cafes.GetByID(context.Background(), cafe.ID)
	assert.ErrorIs(t, err, repository.ErrCafeNotFound)

	index := cl.get("/")
	assert.NotContains(t, index.Body.String(), "Prufrock")
}
