package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusCreated - 201: 创建成功.
	StatusCreated = 201
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusConflict - 409: 资源冲突.
	StatusConflict = 409
	// StatusUnprocessable - 422: 无法处理的请求.
	StatusUnprocessable = 422
	// StatusTooManyRequests - 429: 请求过于频繁.
	StatusTooManyRequests = 429
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
	// ErrTooManyRequests - 429: 请求过于频繁.
	ErrTooManyRequests
)

// 用户相关错误码 (101xxx).
const (
	// ErrUserNotFound - 404: 用户不存在.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 409: 用户已存在.
	ErrUserAlreadyExist
	// ErrInvalidCredentials - 401: 凭证错误.
	ErrInvalidCredentials
	// ErrEmailNotVerified - 403: 邮箱未验证.
	ErrEmailNotVerified
)

// Hub与层级相关错误码 (102xxx).
const (
	// ErrHouseHubNotFound - 404: HouseHub不存在.
	ErrHouseHubNotFound int = iota + 102000
	// ErrBuildingNotFound - 404: 楼栋不存在.
	ErrBuildingNotFound
	// ErrApartmentNotFound - 404: 公寓不存在.
	ErrApartmentNotFound
	// ErrFloorLimitExceeded - 400: 楼层超出范围.
	ErrFloorLimitExceeded
	// ErrUnauthorizedAction - 403: 无权执行此操作.
	ErrUnauthorizedAction
)

// 角色与居住关系错误码 (103xxx).
const (
	// ErrRoleNotFound - 404: 角色不存在.
	ErrRoleNotFound int = iota + 103000
	// ErrRoleConflict - 422: 用户在Hub中已有角色.
	ErrRoleConflict
	// ErrLastGovernor - 422: 必须保留至少一个治理角色.
	ErrLastGovernor
	// ErrResidentNotFound - 404: 居住人不存在.
	ErrResidentNotFound
	// ErrResidentConflict - 409: 居住关系已存在.
	ErrResidentConflict
)

// 依赖服务错误码 (105xxx).
const (
	// ErrMailDispatch - 500: 邮件派发失败.
	ErrMailDispatch int = iota + 105000
	// ErrConnectionFailed - 500: 连接失败.
	ErrConnectionFailed
)
