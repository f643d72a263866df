package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"refdeck/internal/logger"
	"refdeck/services"
	"refdeck/slack"
)

// SlackCommandHandler dispatches inbound slash commands. Whatever happens
// inside a command, Slack always receives HTTP 200 with an ephemeral
// payload: a slow or non-200 answer surfaces as a platform error to the
// user, so every failure is converted into a readable reply instead.
func SlackCommandHandler(svc *services.ReferenceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Log.Errorf("panic in slack command handler: %v", r)
				c.JSON(http.StatusOK, slack.Ephemeral(fmt.Sprintf(":x: Bot error: %v", r)))
			}
		}()

		command := c.PostForm("command")
		text := c.PostForm("text")
		userName := c.PostForm("user_name")

		var msg slack.Message
		var err error
		switch command {
		case "/addref":
			msg, err = svc.AddReference(c.Request.Context(), text, userName)
		case "/ref":
			msg, err = svc.SearchReferences(c.Request.Context(), text, userName)
		case "":
			msg = slack.Ephemeral("Missing command.")
		default:
			msg = slack.Ephemeral("Unknown command.")
		}

		if err != nil {
			logger.ErrorWithFields("slack command failed", logger.Fields{
				"command": command,
				"user":    userName,
				"error":   err.Error(),
			})
			msg = slack.Ephemeral(fmt.Sprintf(":x: Bot error: %s", errorMessage(err)))
		}
		c.JSON(http.StatusOK, msg)
	}
}

func errorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return "unknown error (no message provided)"
	}
	return err.Error()
}
