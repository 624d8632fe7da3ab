package handler

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/contrib/websocket"

	"restaurant_manager/model"
	"restaurant_manager/realtime"
	"restaurant_manager/utils"
)

const (
	wsWriteWait     = 10 * time.Second
	wsSendQueueSize = 32
)

var (
	orderHub    *realtime.Hub
	orderLedger realtime.Ledger
	mailer      *utils.Mailer
)

// InitOrderSync nhận các service dựng sẵn từ main, tránh singleton trong package realtime
func InitOrderSync(hub *realtime.Hub, ledger realtime.Ledger, m *utils.Mailer) {
	orderHub = hub
	orderLedger = ledger
	mailer = m
}

// wsChannel ghi một frame xuống socket. Writer duy nhất là goroutine drain
// của QueuedChannel nên không cần khóa; deadline để socket nghẽn không giữ
// writer vô hạn
type wsChannel struct {
	conn *websocket.Conn
}

func (w *wsChannel) Send(payload []byte) error {
	w.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return w.conn.WriteMessage(websocket.TextMessage, payload)
}

// OrderWebsocket là kênh realtime cho màn hình bếp / tab admin của một nhà
// hàng. Route đã qua Protected() nên tới đây là đã được phép xem.
func OrderWebsocket(c *websocket.Conn) {
	restaurantId := c.Params("restaurantId")
	if restaurantId == "" {
		c.Close()
		return
	}

	ch := realtime.NewQueuedChannel(&wsChannel{conn: c}, wsSendQueueSize)
	if err := orderHub.Subscribe(restaurantId, ch); err != nil {
		log.Printf("WS subscribe failed for %s: %v", restaurantId, err)
		ch.Close()
		c.Close()
		return
	}
	log.Printf("New WS connection for restaurant %s", restaurantId)

	defer func() {
		orderHub.Unsubscribe(restaurantId, ch)
		ch.Close()
		c.Close()
		log.Printf("WS connection closed for restaurant %s", restaurantId)
	}()

	for {
		_, payload, err := c.ReadMessage()
		if err != nil {
			break
		}

		var msg model.OrderSyncMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			// frame hỏng thì bỏ qua, không đóng kênh
			log.Printf("Discarding malformed frame from %s: %v", restaurantId, err)
			continue
		}
		if msg.RestaurantId != "" && msg.RestaurantId != restaurantId {
			log.Printf("Frame for %s arrived on channel %s, ignoring", msg.RestaurantId, restaurantId)
			continue
		}

		if err := orderHub.ApplyUpdate(restaurantId, msg.Orders); err != nil {
			// update bị drop, client giữ snapshot cũ
			log.Printf("Order update dropped for %s: %v", restaurantId, err)
		}
	}
}
