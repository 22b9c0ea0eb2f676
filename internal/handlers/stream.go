// stream.go
//
// Learning-content backend for the studyhub application
// Copyright (c) 2026 Edukita <dev@edukita.io> (https://edukita.io)
//
// This file is part of studyhub.
// studyhub is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// studyhub is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with studyhub.
// If not, see <https://www.gnu.org/licenses/>.

package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// streamSSE runs a generation as a server-sent event stream. Each fragment is
// sent as a JSON-encoded "data:" event; a terminal "done" event carries the
// persisted entity, or an "error" event the failure. The emit delay paces
// fragments so slow client renderers keep up.
func streamSSE(c *fiber.Ctx, delay time.Duration, run func(ctx context.Context, emit func(chunk string) error) (interface{}, error)) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	ctx := c.Context()
	ctx.SetBodyStreamWriter(func(w *bufio.Writer) {
		emit := func(chunk string) error {
			data, err := json.Marshal(chunk)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				return err
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if delay > 0 {
				time.Sleep(delay)
			}
			return nil
		}

		saved, err := run(ctx, emit)
		if err != nil {
			data, _ := json.Marshal(err.Error())
			fmt.Fprintf(w, "event: error\ndata: %s\n\n", data)
			_ = w.Flush()
			return
		}

		data, err := json.Marshal(saved)
		if err != nil {
			data, _ = json.Marshal(err.Error())
			fmt.Fprintf(w, "event: error\ndata: %s\n\n", data)
			_ = w.Flush()
			return
		}
		fmt.Fprintf(w, "event: done\ndata: %s\n\n", data)
		_ = w.Flush()
	})
	return nil
}
