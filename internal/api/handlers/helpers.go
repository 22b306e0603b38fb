package handlers

import (
	"net/http"

	"github.com/aurybot/aury-backend/internal/pkg/errors"
	"github.com/aurybot/aury-backend/internal/pkg/utils"
)

// writeServiceError maps a service error onto the response envelope.
// Known application errors keep their status; anything else becomes a
// generic 500 with the given message.
func writeServiceError(w http.ResponseWriter, err error, message string) {
	if appErr, ok := err.(*errors.AppError); ok {
		utils.WriteError(w, appErr)
		return
	}
	utils.WriteError(w, errors.Internal(message, err))
}
