package dto

// SaveCategoryRequest creates or renames a category
type SaveCategoryRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Type  string `json:"type" validate:"required,category_type"`
	Limit string `json:"limit" validate:"omitempty,numeric"`
}

// CategoryView is the decrypted display form of a category
type CategoryView struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Limit string `json:"limit,omitempty"`
}

// ListCategoriesResponse lists all categories
type ListCategoriesResponse struct {
	Categories []CategoryView `json:"categories"`
}

// SavePayeeRequest creates or renames a payee
type SavePayeeRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// PayeeView is the decrypted display form of a payee
type PayeeView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ListPayeesResponse lists all payees
type ListPayeesResponse struct {
	Payees []PayeeView `json:"payees"`
}

// SetDescriptionMappingRequest creates or updates a description mapping
type SetDescriptionMappingRequest struct {
	Description  string `json:"description" validate:"required,max=500"`
	CategoryName string `json:"category_name" validate:"required,max=100"`
	PayeeName    string `json:"payee_name" validate:"omitempty,max=100"`
}

// DescriptionMappingView is the decrypted display form of a description mapping
type DescriptionMappingView struct {
	Description  string `json:"description"`
	CategoryName string `json:"category_name"`
	PayeeName    string `json:"payee_name,omitempty"`
	Stale        bool   `json:"stale"`
}

// ListDescriptionMappingsResponse lists all description mappings
type ListDescriptionMappingsResponse struct {
	Mappings []DescriptionMappingView `json:"mappings"`
}

// SetAccountMappingRequest names an account number
type SetAccountMappingRequest struct {
	AccountNumber string `json:"account_number" validate:"required,account_number"`
	Name          string `json:"name" validate:"max=100"`
}

// AccountMappingView is the decrypted display form of an account mapping
type AccountMappingView struct {
	AccountNumber string `json:"account_number"`
	Name          string `json:"name"`
}

// ListAccountMappingsResponse lists all account mappings
type ListAccountMappingsResponse struct {
	Accounts []AccountMappingView `json:"accounts"`
}

// SetBudgetRequest sets a category's budget for one month
type SetBudgetRequest struct {
	CategoryID uint   `json:"category_id" validate:"required"`
	Month      string `json:"month" validate:"required,month_key"`
	Amount     string `json:"amount" validate:"required,numeric"`
}

// BudgetView is the decrypted display form of a category budget
type BudgetView struct {
	CategoryID uint   `json:"category_id"`
	Month      string `json:"month"`
	Amount     string `json:"amount"`
}

// ListBudgetsResponse lists the budgets for one month
type ListBudgetsResponse struct {
	Month   string       `json:"month"`
	Budgets []BudgetView `json:"budgets"`
}
