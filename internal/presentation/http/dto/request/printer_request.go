package request

// PrintOrderURI binds the order printed by POST /orders/:id/print
type PrintOrderURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}
