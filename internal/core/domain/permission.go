package domain

// Permission names a single admin capability. Using a dedicated type means an
// unknown capability is a compile error at the call site rather than a silent
// false at runtime.
type Permission string

const (
	PermManageClients    Permission = "manageClients"
	PermBanClients       Permission = "banClients"
	PermManageAdmins     Permission = "manageAdmins"
	PermManageRoles      Permission = "manageRoles"
	PermManageBlogs      Permission = "manageBlogs"
	PermPublishBlogs     Permission = "publishBlogs"
	PermDeleteBlogs      Permission = "deleteBlogs"
	PermManageServices   Permission = "manageServices"
	PermManagePricing    Permission = "managePricing"
	PermManageContacts   Permission = "manageContacts"
	PermRespondContacts  Permission = "respondContacts"
	PermManageCareers    Permission = "manageCareers"
	PermManageRequests   Permission = "manageRequests"
	PermApproveRequests  Permission = "approveRequests"
	PermDeclineRequests  Permission = "declineRequests"
	PermCompleteRequests Permission = "completeRequests"
	PermManageMedia      Permission = "manageMedia"
	PermSendEmails       Permission = "sendEmails"
	PermViewAnalytics    Permission = "viewAnalytics"
	PermViewAuditLogs    Permission = "viewAuditLogs"
	PermExportData       Permission = "exportData"
)

// PermissionSet is the explicit capability record stored on every admin.
// There is no inheritance between flags; each one gates exactly the routes
// that name it.
type PermissionSet struct {
	ManageClients    bool `json:"manageClients" bson:"manageClients"`
	BanClients       bool `json:"banClients" bson:"banClients"`
	ManageAdmins     bool `json:"manageAdmins" bson:"manageAdmins"`
	ManageRoles      bool `json:"manageRoles" bson:"manageRoles"`
	ManageBlogs      bool `json:"manageBlogs" bson:"manageBlogs"`
	PublishBlogs     bool `json:"publishBlogs" bson:"publishBlogs"`
	DeleteBlogs      bool `json:"deleteBlogs" bson:"deleteBlogs"`
	ManageServices   bool `json:"manageServices" bson:"manageServices"`
	ManagePricing    bool `json:"managePricing" bson:"managePricing"`
	ManageContacts   bool `json:"manageContacts" bson:"manageContacts"`
	RespondContacts  bool `json:"respondContacts" bson:"respondContacts"`
	ManageCareers    bool `json:"manageCareers" bson:"manageCareers"`
	ManageRequests   bool `json:"manageRequests" bson:"manageRequests"`
	ApproveRequests  bool `json:"approveRequests" bson:"approveRequests"`
	DeclineRequests  bool `json:"declineRequests" bson:"declineRequests"`
	CompleteRequests bool `json:"completeRequests" bson:"completeRequests"`
	ManageMedia      bool `json:"manageMedia" bson:"manageMedia"`
	SendEmails       bool `json:"sendEmails" bson:"sendEmails"`
	ViewAnalytics    bool `json:"viewAnalytics" bson:"viewAnalytics"`
	ViewAuditLogs    bool `json:"viewAuditLogs" bson:"viewAuditLogs"`
	ExportData       bool `json:"exportData" bson:"exportData"`
}

// Allows returns the stored flag for p. Unmapped permissions default to false.
func (ps PermissionSet) Allows(p Permission) bool {
	switch p {
	case PermManageClients:
		return ps.ManageClients
	case PermBanClients:
		return ps.BanClients
	case PermManageAdmins:
		return ps.ManageAdmins
	case PermManageRoles:
		return ps.ManageRoles
	case PermManageBlogs:
		return ps.ManageBlogs
	case PermPublishBlogs:
		return ps.PublishBlogs
	case PermDeleteBlogs:
		return ps.DeleteBlogs
	case PermManageServices:
		return ps.ManageServices
	case PermManagePricing:
		return ps.ManagePricing
	case PermManageContacts:
		return ps.ManageContacts
	case PermRespondContacts:
		return ps.RespondContacts
	case PermManageCareers:
		return ps.ManageCareers
	case PermManageRequests:
		return ps.ManageRequests
	case PermApproveRequests:
		return ps.ApproveRequests
	case PermDeclineRequests:
		return ps.DeclineRequests
	case PermCompleteRequests:
		return ps.CompleteRequests
	case PermManageMedia:
		return ps.ManageMedia
	case PermSendEmails:
		return ps.SendEmails
	case PermViewAnalytics:
		return ps.ViewAnalytics
	case PermViewAuditLogs:
		return ps.ViewAuditLogs
	case PermExportData:
		return ps.ExportData
	}
	return false
}
