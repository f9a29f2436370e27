package middleware

import (
	"github.com/boxoffice/boxoffice/internal/inventory"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	dbKey        = "db"
	inventoryKey = "inventory"
	qrSecretKey  = "qr_secret"
)

func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbKey, db)
		c.Next()
	}
}

func GetDB(c *gin.Context) *gorm.DB {
	db, exists := c.Get(dbKey)
	if !exists {
		return nil
	}
	return db.(*gorm.DB).WithContext(c.Request.Context())
}

func InventoryMiddleware(engine *inventory.Engine, qrSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(inventoryKey, engine)
		c.Set(qrSecretKey, qrSecret)
		c.Next()
	}
}

func GetInventory(c *gin.Context) *inventory.Engine {
	engine, exists := c.Get(inventoryKey)
	if !exists {
		return nil
	}
	return engine.(*inventory.Engine)
}

func GetQRSecret(c *gin.Context) string {
	return c.GetString(qrSecretKey)
}
