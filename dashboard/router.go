package dashboard

import (
	"context"

	"github.com/agrichain/agrichain/i18n"
	"github.com/agrichain/agrichain/session"
)

// Router picks the dashboard for a session's role
type Router struct {
	workspaces *Workspaces
	admin      *Admin
	translator *i18n.Translator
}

func NewRouter(workspaces *Workspaces, admin *Admin, translator *i18n.Translator) *Router {
	return &Router{workspaces: workspaces, admin: admin, translator: translator}
}

// Translator returns a lookup bound to lang
func (r *Router) Translator(lang string) Translate {
	return func(key string) string { return r.translator.T(lang, key) }
}

// Render builds the dashboard view of sess in lang
func (r *Router) Render(ctx context.Context, sess *session.Session, lang string) (View, error) {
	t := r.Translator(lang)
	if sess == nil {
		return InvalidRoleView(t), nil
	}

	return r.route(ctx, sess, t)
}

// route needs a new case for every role added to session.Roles
func (r *Router) route(ctx context.Context, sess *session.Session, t Translate) (View, error) {
	var (
		view View
		err  error
	)
	switch sess.Role {
	case session.RoleFarmer:
		view = r.workspaces.Get(sess.ID).Farmer.view(t)
	case session.RoleDistributor:
		view = r.workspaces.Get(sess.ID).Distributor.view(t)
	case session.RoleRetailer:
		view = r.workspaces.Get(sess.ID).Retailer.view(t)
	case session.RoleConsumer:
		view = r.workspaces.Get(sess.ID).Consumer.view(t)
	case session.RoleAdmin:
		view, err = r.admin.view(ctx, t)
		if err != nil {
			return View{}, err
		}
	default:
		return InvalidRoleView(t), nil
	}
	view.Role = string(sess.Role)
	return view, nil
}

// InvalidRoleView is shown to sessions whose role has no dashboard
func InvalidRoleView(t Translate) View {
	return View{
		Role:    "invalid",
		Title:   t(i18n.KeyInvalidRoleTitle),
		Message: t(i18n.KeyInvalidRoleMessage),
	}
}

// UnauthorizedView is shown to requests without a session
func UnauthorizedView(t Translate) View {
	return View{
		Role:    "unauthorized",
		Title:   t(i18n.KeyUnauthorizedTitle),
		Message: t(i18n.KeyUnauthorizedText),
	}
}
