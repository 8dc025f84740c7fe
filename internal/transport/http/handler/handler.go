package handler

// Handlers 路由装配用的聚合
type Handlers struct {
	Auth    *AuthHandler
	Posts   *PostHandler
	Profile *ProfileHandler
	Upload  *UploadHandler
}
