package brokerclient

import "net/http"

// operation is one entry of the broker's declarative call table: a stable
// call-site identifier, an HTTP method and a resty path template. Status
// interpretation stays with the per-operation methods, which all funnel
// through Client.send.
type operation struct {
	id     string
	method string
	path   string
}

var (
	opAuthenticate        = operation{id: "broker.authenticate", method: http.MethodPost, path: "/api/v2/users/auth"}
	opAuthenticateNewUser = operation{id: "broker.authenticate_new_user", method: http.MethodPost, path: "/api/v2/users/auth/new"}
	opCreateUser          = operation{id: "broker.create_user", method: http.MethodPost, path: "/api/v2/users"}
	opUpdateUser          = operation{id: "broker.update_user", method: http.MethodPut, path: "/api/v2/users/{employee_id}"}
	opDeactivateUser      = operation{id: "broker.deactivate_user", method: http.MethodPost, path: "/api/v2/users/{employee_id}/deactivate"}
	opGetUser             = operation{id: "broker.get_user", method: http.MethodGet, path: "/api/v2/users/{employee_id}"}
	opListUsers           = operation{id: "broker.list_users", method: http.MethodGet, path: "/api/v2/users"}
	opSetPassword         = operation{id: "broker.set_password", method: http.MethodPost, path: "/api/v2/users/{employee_id}/password"}
	opSiteStatus          = operation{id: "broker.site_status", method: http.MethodGet, path: "/api/v2/site/status"}

	opMFACreate = operation{id: "broker.mfa_create", method: http.MethodPost, path: "/api/v2/users/{employee_id}/mfa"}
	opMFAList   = operation{id: "broker.mfa_list", method: http.MethodGet, path: "/api/v2/users/{employee_id}/mfa"}
	opMFAUpdate = operation{id: "broker.mfa_update", method: http.MethodPut, path: "/api/v2/users/{employee_id}/mfa/{mfa_id}"}
	opMFADelete = operation{id: "broker.mfa_delete", method: http.MethodDelete, path: "/api/v2/users/{employee_id}/mfa/{mfa_id}"}
	opMFAVerify = operation{id: "broker.mfa_verify", method: http.MethodPost, path: "/api/v2/users/{employee_id}/mfa/{mfa_id}/verify"}

	opCreateMethod = operation{id: "broker.create_method", method: http.MethodPost, path: "/api/v2/users/{employee_id}/methods"}
	opGetMethod    = operation{id: "broker.get_method", method: http.MethodGet, path: "/api/v2/users/{employee_id}/methods/{method_id}"}
	opListMethods  = operation{id: "broker.list_methods", method: http.MethodGet, path: "/api/v2/users/{employee_id}/methods"}
	opVerifyMethod = operation{id: "broker.verify_method", method: http.MethodPost, path: "/api/v2/users/{employee_id}/methods/{method_id}/verify"}
	opDeleteMethod = operation{id: "broker.delete_method", method: http.MethodDelete, path: "/api/v2/users/{employee_id}/methods/{method_id}"}
	opResendMethod = operation{id: "broker.resend_method", method: http.MethodPost, path: "/api/v2/users/{employee_id}/methods/{method_id}/resend"}
)
