package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"hiretrack/screening-api/internal/models"
)

// streamEvents writes progress events as Server-Sent Events until the channel
// closes. Channel closure is the end of the stream; there is no sentinel
// frame. If the client goes away mid-stream the channel is still drained so
// the producing run completes and persists.
func streamEvents(c *fiber.Ctx, events <-chan models.ProgressEvent) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		for event := range events {
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			if err := w.Flush(); err != nil {
				for range events {
				}
				return
			}
		}
	})

	return nil
}

func errorJSON(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
