package adminControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/korede-dotcom/beautybytasapi/models"
)

// ExportOrdersToExcel downloads every order row as a spreadsheet.
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "Reference", "ProductID", "ProductName", "CustomerName",
			"Amount", "Quantity", "Status", "UserID", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			row := sheet.AddRow()
			row.AddCell().SetValue(o.ID)
			row.AddCell().SetValue(o.Reference)
			row.AddCell().SetValue(o.ProductID)
			row.AddCell().SetValue(o.ProductName)
			row.AddCell().SetValue(o.CustomerName)
			row.AddCell().SetValue(o.Amount)
			row.AddCell().SetValue(o.Quantity)
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(o.UserID)
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		writeWorkbook(c, file, "orders.xlsx")
	}
}

// ExportSubscribersToExcel downloads the subscriber list as a spreadsheet.
func ExportSubscribersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var subscribers []models.Subscriber
		if err := db.Order("subscribed_at DESC").Find(&subscribers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to fetch subscribers"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Subscribers")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to create Excel sheet"})
			return
		}

		headers := []string{"ID", "Email", "Name", "Subscribed", "SubscribedAt", "Source"}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, s := range subscribers {
			row := sheet.AddRow()
			row.AddCell().SetValue(s.ID)
			row.AddCell().SetValue(s.Email)
			row.AddCell().SetValue(s.Name)
			row.AddCell().SetValue(s.Subscribed)
			row.AddCell().SetValue(s.SubscribedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(s.Source)
		}

		writeWorkbook(c, file, "subscribers.xlsx")
	}
}

func writeWorkbook(c *gin.Context, file *xlsx.File, filename string) {
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")

	if err := file.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to write Excel file"})
	}
}
