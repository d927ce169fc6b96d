package request

// ExportQuery selects the month to export as YYYY-MM
type ExportQuery struct {
	Month string `form:"month" binding:"required,datetime=2006-01"`
}
