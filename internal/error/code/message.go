package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:      "Success",
	ErrUnknown:      "Internal server error",
	ErrBind:         "Invalid request parameters",
	ErrValidation:   "Request validation failed",
	ErrTokenInvalid: "Invalid or expired token",
	ErrDatabase:     "Database error",
	ErrRecordNotFound: "Resource not found",
	ErrTooManyRequests: "Too many requests, please try again later",

	// 用户相关错误码
	ErrUserNotFound:       "User not found",
	ErrUserAlreadyExist:   "User already exists",
	ErrInvalidCredentials: "Invalid Credentials",
	ErrEmailNotVerified:   "Your email is not verified.",

	// Hub与层级相关错误码
	ErrHouseHubNotFound:   "HouseHub not found",
	ErrBuildingNotFound:   "Building not found",
	ErrApartmentNotFound:  "Apartment not found",
	ErrFloorLimitExceeded: "Floor limit exceeded",
	ErrUnauthorizedAction: "Unauthorized User",

	// 角色与居住关系错误码
	ErrRoleNotFound:     "Role not found",
	ErrRoleConflict:     "This user already has a role in this House Hub.",
	ErrLastGovernor:     "At least one Committee Member or Owner must remain in the House Hub.",
	ErrResidentNotFound: "Resident not found",
	ErrResidentConflict: "This user is already a resident of this apartment.",

	// 依赖服务错误码
	ErrMailDispatch:     "Failed to dispatch mail",
	ErrConnectionFailed: "Connection failed",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:      StatusOK,
	ErrUnknown:      StatusInternalServerError,
	ErrBind:         StatusBadRequest,
	ErrValidation:   StatusBadRequest,
	ErrTokenInvalid: StatusUnauthorized,
	ErrDatabase:     StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
	ErrTooManyRequests: StatusTooManyRequests,

	// 用户相关错误码
	ErrUserNotFound:       StatusNotFound,
	ErrUserAlreadyExist:   StatusConflict,
	ErrInvalidCredentials: StatusUnauthorized,
	ErrEmailNotVerified:   StatusForbidden,

	// Hub与层级相关错误码
	ErrHouseHubNotFound:   StatusNotFound,
	ErrBuildingNotFound:   StatusNotFound,
	ErrApartmentNotFound:  StatusNotFound,
	ErrFloorLimitExceeded: StatusBadRequest,
	ErrUnauthorizedAction: StatusForbidden,

	// 角色与居住关系错误码
	ErrRoleNotFound:     StatusNotFound,
	ErrRoleConflict:     StatusUnprocessable,
	ErrLastGovernor:     StatusUnprocessable,
	ErrResidentNotFound: StatusNotFound,
	ErrResidentConflict: StatusConflict,

	// 依赖服务错误码
	ErrMailDispatch:     StatusInternalServerError,
	ErrConnectionFailed: StatusInternalServerError,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "Internal server error"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
