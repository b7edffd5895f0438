package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"visa_crm_app_go/config"
	"visa_crm_app_go/models"
	"visa_crm_app_go/services/i18n"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTicketHandler(t *testing.T) {
	testDB := setupTestDB(t)

	t.Run("Valid ticket", func(t *testing.T) {
		body := `{"name":"Ayşe Demir","email":" Ayse@Example.com ","subject":"Randevu","message":"<b>Randevu</b> tarihi değişti mi?"}`
		_, c, rec := setupEcho(http.MethodPost, "/api/tickets", strings.NewReader(body))
		c.Set("locale", "en")

		require.NoError(t, CreateTicketHandler(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["id"])
		assert.Equal(t, models.TicketStatusOpen, resp["status"])

		var ticket models.SupportTicket
		require.NoError(t, testDB.First(&ticket, "id = ?", resp["id"]).Error)
		assert.Equal(t, "ayse@example.com", ticket.Email)
		assert.Equal(t, "Randevu tarihi değişti mi?", ticket.Message)
		assert.Equal(t, models.TicketPriorityNormal, ticket.Priority)
		assert.Equal(t, "en", ticket.Language)
	})

	t.Run("Invalid ticket returns translated errors", func(t *testing.T) {
		body := `{"name":"","email":"not-an-email","subject":"Hi","message":"Hello","priority":"urgent"}`
		_, c, rec := setupEcho(http.MethodPost, "/api/tickets", strings.NewReader(body))
		c.Set("locale", "tr")

		require.NoError(t, CreateTicketHandler(c))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp struct {
			Errors map[string]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Errors, 3)
		assert.Equal(t, i18n.Translate("tr", "tickets.error.name_required"), resp.Errors["name"])
		assert.Equal(t, i18n.Translate("tr", "tickets.error.email_invalid"), resp.Errors["email"])
		assert.Equal(t, i18n.Translate("tr", "tickets.error.priority_invalid"), resp.Errors["priority"])
		assert.NotEqual(t, "tickets.error.email_invalid", resp.Errors["email"])
	})
}

func TestCreateTicketHandlerRequiresCaptcha(t *testing.T) {
	testDB := setupTestDB(t)

	body := `{"name":"Ayşe Demir","email":"ayse@example.com","subject":"Randevu","message":"Merhaba"}`
	_, c, _ := setupEcho(http.MethodPost, "/api/tickets", strings.NewReader(body))
	cfg := c.Get("config").(*config.Config)
	cfg.TurnstileSecretKey = "secret"

	err := CreateTicketHandler(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusForbidden, he.Code)

	var count int64
	testDB.Model(&models.SupportTicket{}).Count(&count)
	assert.Zero(t, count)
}
