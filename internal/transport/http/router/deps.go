package router

import (
	"go.uber.org/zap"

	"fanfare-backend/internal/core/auth"
	"fanfare-backend/internal/core/config"
	"fanfare-backend/internal/transport/http/handler"
)

// Deps 路由装配所需的全部依赖，由 main 组装
type Deps struct {
	Cfg   *config.Config
	Log   *zap.Logger
	JWTer *auth.JWTer

	Auth       *handler.AuthHandler
	Reg        *handler.RegistrationHandler
	Profile    *handler.ProfileHandler
	Content    *handler.ContentHandler
	Users      *handler.AdminUsersHandler
	Events     *handler.AdminEventsHandler
	Badges     *handler.AdminBadgesHandler
	Newsletter *handler.AdminNewsletterHandler
	Activities *handler.AdminActivitiesHandler
	Uploads    *handler.AdminUploadsHandler
}
