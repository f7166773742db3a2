package handlers

import (
	"feed-sync-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ListRoomsHandler returns every room the process knows about with member
// and item counts.
func ListRoomsHandler(svc *services.RoomService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"rooms": svc.Rooms()})
	}
}

// RoomSnapshotHandler exports one room's full state as JSON. The payload is
// the same item sequence the websocket update events carry, so a client can
// bootstrap or archive a room over plain HTTP.
func RoomSnapshotHandler(svc *services.RoomService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, ok := svc.Snapshot(c.Params("id"))
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "room not found"})
		}
		return c.JSON(snap)
	}
}
