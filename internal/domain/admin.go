package domain

import "time"

// AdminRole роль администратора
type AdminRole string

const (
	RoleSuperAdmin             AdminRole = "SUPER_ADMIN"
	RoleOperationsManager      AdminRole = "OPERATIONS_MANAGER"
	RoleFinanceOfficer         AdminRole = "FINANCE_OFFICER"
	RoleSecuritySupervisor     AdminRole = "SECURITY_SUPERVISOR"
	RoleITSupport              AdminRole = "IT_SUPPORT"
	RoleCustomerServiceOfficer AdminRole = "CUSTOMER_SERVICE_OFFICER"
)

// Capability право доступа к разделу административной панели
type Capability string

const (
	CapabilityOperations Capability = "operations"
	CapabilityFinance    Capability = "finance"
	CapabilityCustomer   Capability = "customer"
	CapabilitySecurity   Capability = "security"
	CapabilityIT         Capability = "it"
)

// AllCapabilities все права в порядке отображения на дашборде
var AllCapabilities = []Capability{
	CapabilityOperations,
	CapabilityFinance,
	CapabilityCustomer,
	CapabilitySecurity,
	CapabilityIT,
}

var roleCapabilities = map[AdminRole][]Capability{
	RoleSuperAdmin:             AllCapabilities,
	RoleOperationsManager:      {CapabilityOperations},
	RoleFinanceOfficer:         {CapabilityFinance},
	RoleSecuritySupervisor:     {CapabilitySecurity},
	RoleITSupport:              {CapabilityIT},
	RoleCustomerServiceOfficer: {CapabilityCustomer},
}

// IsValid проверяет, что роль известна
func (r AdminRole) IsValid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// Capabilities возвращает набор прав роли (пустой для неизвестной роли)
func (r AdminRole) Capabilities() []Capability {
	caps := roleCapabilities[r]
	out := make([]Capability, len(caps))
	copy(out, caps)
	return out
}

// Can проверяет наличие права у роли
func (r AdminRole) Can(c Capability) bool {
	for _, rc := range roleCapabilities[r] {
		if rc == c {
			return true
		}
	}
	return false
}

// Admin администратор системы
type Admin struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         AdminRole
	CreatedAt    time.Time
}
