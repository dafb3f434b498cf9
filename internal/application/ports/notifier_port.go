package ports

import "context"

// NotificationTypeStockIn tipo de la notificación emitida tras una entrada por código de barras.
const NotificationTypeStockIn = "stock_in"

// StockInData carga útil de una notificación stock_in.
type StockInData struct {
	Barcode      string  `json:"barcode"`
	ItemID       string  `json:"item_id"`
	ItemName     string  `json:"item_name"`
	Location     *string `json:"location"`
	Quantity     int64   `json:"quantity"`
	IsNew        bool    `json:"is_new"`
	CategoryID   *string `json:"category_id,omitempty"`
	CategoryName *string `json:"category_name,omitempty"`
}

// Notification mensaje que se difunde a los clientes conectados.
type Notification struct {
	Type string      `json:"type"`
	Data StockInData `json:"data"`
}

// Publisher define el puerto de salida para difundir notificaciones de stock.
// Los adaptadores (hub en memoria, Redis pub/sub) implementan esta interfaz;
// la aplicación no conoce el transporte.
type Publisher interface {
	Publish(ctx context.Context, n Notification) error
}
