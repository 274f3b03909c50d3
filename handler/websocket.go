package handler

import (
	"context"
	"log"
	"strconv"
	"sync"

	"seminar_manager/database"
	"seminar_manager/helper"
	"seminar_manager/model"

	"github.com/gofiber/contrib/websocket"
)

var (
	capacityConnections = make(map[uint]map[*websocket.Conn]bool)
	capacityMutex       sync.Mutex
)

// CapacityWebsocket streams live capacity updates for a seminar. The client
// receives the current status on connect and a fresh snapshot whenever a
// registration is created or cancelled.
func CapacityWebsocket(c *websocket.Conn) {
	idStr := c.Params("seminarId")
	id64, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		log.Printf("Invalid seminarId: %s", idStr)
		c.Close()
		return
	}
	seminarId := uint(id64)

	capacityMutex.Lock()
	if capacityConnections[seminarId] == nil {
		capacityConnections[seminarId] = make(map[*websocket.Conn]bool)
	}
	capacityConnections[seminarId][c] = true
	capacityMutex.Unlock()

	defer func() {
		capacityMutex.Lock()
		delete(capacityConnections[seminarId], c)
		if len(capacityConnections[seminarId]) == 0 {
			delete(capacityConnections, seminarId)
		}
		capacityMutex.Unlock()
		c.Close()
	}()

	BroadcastCapacity(seminarId)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}

// BroadcastCapacity sends the current capacity snapshot of a seminar to every
// connection subscribed to it on this instance.
func BroadcastCapacity(seminarId uint) {
	db := database.DB
	if db == nil {
		return
	}

	var seminar model.Seminar
	if err := db.First(&seminar, seminarId).Error; err != nil {
		log.Printf("Error loading seminar %d for broadcast: %v", seminarId, err)
		return
	}
	status := buildCapacityStatus(seminar)

	capacityMutex.Lock()
	conns, ok := capacityConnections[seminarId]
	if !ok {
		capacityMutex.Unlock()
		return
	}
	targets := make([]*websocket.Conn, 0, len(conns))
	for conn := range conns {
		targets = append(targets, conn)
	}
	capacityMutex.Unlock()

	for _, conn := range targets {
		if err := conn.WriteJSON(status); err != nil {
			log.Printf("Error broadcasting capacity: %v", err)
		}
	}
}

// NotifyCapacityChange broadcasts to local subscribers and publishes on Redis
// so subscribers connected to other instances see the change too.
func NotifyCapacityChange(seminarId uint) {
	BroadcastCapacity(seminarId)
	go helper.PublishCapacityChange(seminarId)
}

// StartCapacitySubscriber relays capacity changes published by other instances
// to the websocket clients connected here.
func StartCapacitySubscriber() {
	go func() {
		pubsub := helper.RedisClient().Subscribe(context.Background(), "seminar_manager:capacity")
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			id64, err := strconv.ParseUint(msg.Payload, 10, 64)
			if err != nil {
				continue
			}
			BroadcastCapacity(uint(id64))
		}
	}()
}
