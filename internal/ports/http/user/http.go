package userhttp

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ARUMANDESU/validation"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	userapp "gitlab.com/garageonwheels/gow-web/internal/application/user"
	"gitlab.com/garageonwheels/gow-web/internal/application/user/cmd"
	"gitlab.com/garageonwheels/gow-web/internal/application/user/query"
	"gitlab.com/garageonwheels/gow-web/internal/domain/user"
	"gitlab.com/garageonwheels/gow-web/internal/domain/valueobject/gender"
	"gitlab.com/garageonwheels/gow-web/internal/domain/valueobject/role"
	"gitlab.com/garageonwheels/gow-web/internal/ports/http/middlewares"
	"gitlab.com/garageonwheels/gow-web/internal/ports/http/render"
	"gitlab.com/garageonwheels/gow-web/pkg/ctxs"
	"gitlab.com/garageonwheels/gow-web/pkg/errorx"
	"gitlab.com/garageonwheels/gow-web/pkg/httpx"
	"gitlab.com/garageonwheels/gow-web/pkg/otelx"
	"gitlab.com/garageonwheels/gow-web/pkg/sanitizex"
)

var (
	tracer = otel.Tracer("gow/internal/ports/http/user")
	logger = otelslog.NewLogger("gow/internal/ports/http/user")
)

// notices maps the notice keys accepted in the query string to their
// message IDs. Anything outside this list renders no banner.
var notices = map[string]string{
	"user_created":     "notice_user_created",
	"user_updated":     "notice_user_updated",
	"user_deleted":     "notice_user_deleted",
	"password_changed": "notice_password_changed",
	"otp_sent":         "notice_otp_sent",
	"email_verified":   "notice_email_verified",
}

// returnDestinations maps the returnTo keys accepted from forms and query
// strings to redirect paths. Anything outside this list falls back to the
// users listing.
var returnDestinations = map[string]string{
	"users":     "/users",
	"customers": "/users/customers",
	"dashboard": "/dashboard",
}

type HTTP struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	cmd        *userapp.Command
	query      *userapp.Query
	mw         *middlewares.Middleware
	renderer   *render.Renderer
	errhandler *httpx.ErrorHandler
}

type Args struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	App        *userapp.App
	Middleware *middlewares.Middleware
	Renderer   *render.Renderer
	Errhandler *httpx.ErrorHandler
}

func NewHTTP(args Args) *HTTP {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}
	if args.Errhandler == nil {
		args.Errhandler = httpx.NewErrorHandler()
	}

	return &HTTP{
		tracer:     args.Tracer,
		logger:     args.Logger,
		cmd:        &args.App.Command,
		query:      &args.App.Query,
		mw:         args.Middleware,
		renderer:   args.Renderer,
		errhandler: args.Errhandler,
	}
}

func (h *HTTP) Route(r chi.Router) {
	r.Get("/account/login", h.LoginPage)
	r.Get("/users/create", h.CreatePage)
	r.Post("/users/create", h.Create)
	r.Get("/account/verify-otp", h.VerifyOTPPage)
	r.Post("/account/verify-otp", h.VerifyOTP)
	r.Post("/account/resend-otp", h.ResendOTP)

	r.Group(func(r chi.Router) {
		r.Use(h.mw.Auth)

		r.Get("/", h.Root)
		r.Get("/dashboard", h.Dashboard)
		r.Get("/profile", h.ProfilePage)
		r.Post("/profile", h.UpdateProfile)
		r.Get("/change-password", h.ChangePasswordPage)
		r.Post("/change-password", h.ChangePassword)

		r.With(h.mw.RequireRoles(role.GarageOwner)).Get("/users/customers", h.Customers)

		r.Group(func(r chi.Router) {
			r.Use(h.mw.RequireRoles(role.SuperAdmin))
			r.Get("/users", h.AllUsers)
			r.Get("/users/{id}/edit", h.EditPage)
			r.Post("/users/{id}/edit", h.Edit)
			r.Post("/users/{id}/delete", h.Delete)
			r.Get("/users/{id}/change-password", h.ChangePasswordPage)
			r.Post("/users/{id}/change-password", h.ChangePassword)
			r.Get("/api/users/garage-owners", h.GarageOwnersJSON)
			r.Get("/api/users/by-role", h.UsersByRoleJSON)
		})
	})
}

type simplePage struct {
	Title  string
	Notice string
}

type listPage struct {
	Title  string
	Notice string
	Users  []user.User
}

type userFormPage struct {
	Title        string
	Notice       string
	Errors       map[string]string
	Form         user.RegisterForm
	Roles        []role.Role
	Genders      []gender.Gender
	Action       string
	ReturnTo     string
	WithPassword bool
}

type profilePage struct {
	Notice  string
	Errors  map[string]string
	Form    user.ProfileForm
	Genders []gender.Gender
}

type otpPage struct {
	Notice string
	Errors map[string]string
	Form   user.OTPForm
}

type passwordPage struct {
	Notice string
	Errors map[string]string
	Action string
}

type errorPage struct {
	Title   string
	Message string
}

func (h *HTTP) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *HTTP) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.HTML(w, r, http.StatusOK, "login.tmpl", simplePage{Notice: h.notice(r)})
}

func (h *HTTP) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.renderer.HTML(w, r, http.StatusOK, "dashboard.tmpl", simplePage{
		Title:  "Dashboard",
		Notice: h.notice(r),
	})
}

func (h *HTTP) AllUsers(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AllUsers")
	defer span.End()

	users, err := h.query.List.Handle(ctx, query.List{Scope: query.ScopeAll})
	if err != nil {
		h.renderError(w, r, span, err, "failed to list users")
		return
	}

	h.renderer.HTML(w, r, http.StatusOK, "users.tmpl", listPage{
		Title:  "All Users",
		Notice: h.notice(r),
		Users:  users,
	})
}

func (h *HTTP) Customers(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Customers")
	defer span.End()

	users, err := h.query.List.Handle(ctx, query.List{Scope: query.ScopeCustomers})
	if err != nil {
		h.renderError(w, r, span, err, "failed to list customers")
		return
	}

	h.renderer.HTML(w, r, http.StatusOK, "users.tmpl", listPage{
		Title:  "Customers",
		Notice: h.notice(r),
		Users:  users,
	})
}

func (h *HTTP) GarageOwnersJSON(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GarageOwnersJSON")
	defer span.End()

	users, err := h.query.List.Handle(ctx, query.List{Scope: query.ScopeGarageOwners})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to list garage owners")
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"users": users})
}

func (h *HTTP) UsersByRoleJSON(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UsersByRoleJSON")
	defer span.End()

	roleParam := sanitizex.CleanSingleLine(r.URL.Query().Get("role"))
	otelx.SetSpanAttrs(span, map[string]any{"role": roleParam})

	users, err := h.query.List.Handle(ctx, query.List{
		Scope: query.ScopeByRole,
		Role:  role.Role(roleParam),
	})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to list users by role")
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"users": users})
}

func (h *HTTP) CreatePage(w http.ResponseWriter, r *http.Request) {
	h.renderer.HTML(w, r, http.StatusOK, "user_form.tmpl", h.createPage(r, user.RegisterForm{}, nil))
}

func (h *HTTP) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CreateUser")
	defer span.End()

	form := parseRegisterForm(r)

	var createdBy uuid.UUID
	if u, ok := ctxs.UserFromCtx(ctx); ok {
		createdBy = u.ID
	}

	result, err := h.cmd.Create.Handle(ctx, cmd.Create{Form: form, CreatedBy: createdBy})
	if err != nil {
		h.formError(w, r, span, err, "user create failed", func(errs map[string]string, status int) {
			h.renderer.HTML(w, r, status, "user_form.tmpl", h.createPage(r, form, errs))
		})
		return
	}

	if !result.Created {
		errs := map[string]string{"": h.localize(r, "remote_rejected", map[string]any{"Status": result.Status})}
		h.renderer.HTML(w, r, rejectionStatus(result.Status), "user_form.tmpl", h.createPage(r, form, errs))
		return
	}

	dest := "/account/verify-otp?email=" + url.QueryEscape(form.Email)
	if result.OTPSent {
		dest += "&notice=otp_sent"
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (h *HTTP) createPage(r *http.Request, form user.RegisterForm, errs map[string]string) userFormPage {
	return userFormPage{
		Title:        "Create User",
		Notice:       h.notice(r),
		Errors:       errs,
		Form:         form,
		Roles:        role.All(),
		Genders:      gender.All(),
		Action:       "/users/create",
		WithPassword: true,
	}
}

func (h *HTTP) VerifyOTPPage(w http.ResponseWriter, r *http.Request) {
	email := sanitizex.CleanSingleLine(r.URL.Query().Get("email"))
	h.renderer.HTML(w, r, http.StatusOK, "verify_otp.tmpl", otpPage{
		Notice: h.notice(r),
		Form:   user.OTPForm{Email: email},
	})
}

func (h *HTTP) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "VerifyOTP")
	defer span.End()

	form := user.OTPForm{
		Email: r.PostFormValue("email"),
		OTP:   r.PostFormValue("otp"),
	}

	err := h.cmd.VerifyOTP.Handle(ctx, cmd.VerifyOTP{Form: form})
	if err != nil {
		form.Sanitized()
		h.formError(w, r, span, err, "otp verification failed", func(errs map[string]string, status int) {
			form.OTP = ""
			h.renderer.HTML(w, r, status, "verify_otp.tmpl", otpPage{Errors: errs, Form: form})
		})
		return
	}

	http.Redirect(w, r, "/account/login?notice=email_verified", http.StatusSeeOther)
}

func (h *HTTP) ResendOTP(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ResendOTP")
	defer span.End()

	email := sanitizex.CleanSingleLine(r.PostFormValue("email"))

	err := h.cmd.ResendOTP.Handle(ctx, cmd.ResendOTP{Email: email})
	if err != nil {
		h.formError(w, r, span, err, "otp resend failed", func(errs map[string]string, status int) {
			h.renderer.HTML(w, r, status, "verify_otp.tmpl", otpPage{
				Errors: errs,
				Form:   user.OTPForm{Email: email},
			})
		})
		return
	}

	dest := "/account/verify-otp?email=" + url.QueryEscape(email) + "&notice=otp_sent"
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (h *HTTP) EditPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "EditUserPage")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		h.renderError(w, r, span, errorx.NewInvalidRequest().WithCause(err), "invalid user id")
		return
	}

	record, err := h.query.Get.Handle(ctx, query.Get{ID: id})
	if err != nil {
		h.renderError(w, r, span, err, "failed to load user for edit")
		return
	}

	h.renderer.HTML(w, r, http.StatusOK, "user_form.tmpl",
		h.editPage(r, user.RegisterFormFromUser(*record), nil, returnKey(r.URL.Query().Get("returnTo"))))
}

func (h *HTTP) Edit(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "EditUser")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		h.renderError(w, r, span, errorx.NewInvalidRequest().WithCause(err), "invalid user id")
		return
	}

	returnTo := returnKey(r.PostFormValue("returnTo"))

	// The form never carries the password, verification flag, soft-delete
	// flag, or creator stamps; refetch so the update does not wipe them.
	current, err := h.query.Get.Handle(ctx, query.Get{ID: id})
	if err != nil {
		h.renderError(w, r, span, err, "failed to load user for edit")
		return
	}

	form := parseRegisterForm(r)
	form.ID = id
	form.Password = current.Password
	form.IsEmailVerified = current.IsEmailVerified
	form.IsDelete = current.IsDelete
	form.CreatedBy = current.CreatedBy
	form.CreatedAt = current.CreatedAt

	var session uuid.UUID
	if u, ok := ctxs.UserFromCtx(ctx); ok {
		session = u.ID
	}

	result, err := h.cmd.Update.Handle(ctx, cmd.Update{Form: form, UpdatedBy: session})
	if err != nil {
		h.formError(w, r, span, err, "user update failed", func(errs map[string]string, status int) {
			h.renderer.HTML(w, r, status, "user_form.tmpl", h.editPage(r, form, errs, returnTo))
		})
		return
	}

	if !result.Updated {
		errs := map[string]string{"": h.localize(r, "remote_rejected", map[string]any{"Status": result.Status})}
		h.renderer.HTML(w, r, rejectionStatus(result.Status), "user_form.tmpl", h.editPage(r, form, errs, returnTo))
		return
	}

	http.Redirect(w, r, returnPath(returnTo)+"?notice=user_updated", http.StatusSeeOther)
}

func (h *HTTP) editPage(r *http.Request, form user.RegisterForm, errs map[string]string, returnTo string) userFormPage {
	return userFormPage{
		Title:    "Edit User",
		Notice:   h.notice(r),
		Errors:   errs,
		Form:     form,
		Roles:    role.All(),
		Genders:  gender.All(),
		Action:   fmt.Sprintf("/users/%s/edit", form.ID),
		ReturnTo: returnTo,
	}
}

func (h *HTTP) ProfilePage(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ProfilePage")
	defer span.End()

	session, ok := ctxs.UserFromCtx(ctx)
	if !ok {
		h.renderError(w, r, span, errorx.NewUnauthorized(), "no session user")
		return
	}

	record, err := h.query.Get.Handle(ctx, query.Get{ID: session.ID})
	if err != nil {
		h.renderError(w, r, span, err, "failed to load profile")
		return
	}

	h.renderer.HTML(w, r, http.StatusOK, "profile_form.tmpl", profilePage{
		Notice:  h.notice(r),
		Form:    user.ProfileFormFromUser(*record),
		Genders: gender.All(),
	})
}

func (h *HTTP) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UpdateProfile")
	defer span.End()

	session, ok := ctxs.UserFromCtx(ctx)
	if !ok {
		h.renderError(w, r, span, errorx.NewUnauthorized(), "no session user")
		return
	}

	// Role, verification flag, and email stay whatever they are on the
	// record; the profile form only edits contact details.
	current, err := h.query.Get.Handle(ctx, query.Get{ID: session.ID})
	if err != nil {
		h.renderError(w, r, span, err, "failed to load profile")
		return
	}

	form := user.ProfileFormFromUser(*current)
	form.FirstName = r.PostFormValue("firstName")
	form.LastName = r.PostFormValue("lastName")
	form.PhoneNo = r.PostFormValue("phoneNo")
	form.Gender = gender.Gender(r.PostFormValue("gender"))
	form.Address = r.PostFormValue("address")
	form.CountryID = atoi(r.PostFormValue("countryId"))
	form.StateID = atoi(r.PostFormValue("stateId"))
	form.CityID = atoi(r.PostFormValue("cityId"))
	form.AreaID = atoi(r.PostFormValue("areaId"))

	result, err := h.cmd.UpdateProfile.Handle(ctx, cmd.UpdateProfile{Form: form, UpdatedBy: session.ID})
	if err != nil {
		h.formError(w, r, span, err, "profile update failed", func(errs map[string]string, status int) {
			h.renderer.HTML(w, r, status, "profile_form.tmpl", profilePage{
				Errors:  errs,
				Form:    form,
				Genders: gender.All(),
			})
		})
		return
	}

	if !result.Updated {
		errs := map[string]string{"": h.localize(r, "remote_rejected", map[string]any{"Status": result.Status})}
		h.renderer.HTML(w, r, rejectionStatus(result.Status), "profile_form.tmpl", profilePage{
			Errors:  errs,
			Form:    form,
			Genders: gender.All(),
		})
		return
	}

	http.Redirect(w, r, "/dashboard?notice=user_updated", http.StatusSeeOther)
}

func (h *HTTP) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "DeleteUser")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		h.renderError(w, r, span, errorx.NewInvalidRequest().WithCause(err), "invalid user id")
		return
	}

	result, err := h.cmd.Delete.Handle(ctx, cmd.Delete{ID: id})
	if err != nil {
		h.renderError(w, r, span, err, "user delete failed")
		return
	}

	if !result.Deleted {
		h.renderer.HTML(w, r, rejectionStatus(result.Status), "error.tmpl", errorPage{
			Title:   "Delete failed",
			Message: h.localize(r, "remote_rejected", map[string]any{"Status": result.Status}),
		})
		return
	}

	http.Redirect(w, r, "/users?notice=user_deleted", http.StatusSeeOther)
}

func (h *HTTP) ChangePasswordPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.HTML(w, r, http.StatusOK, "change_password.tmpl", passwordPage{
		Notice: h.notice(r),
		Action: r.URL.Path,
	})
}

func (h *HTTP) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ChangePassword")
	defer span.End()

	target, self, err := h.passwordTarget(r)
	if err != nil {
		h.renderError(w, r, span, err, "invalid password change target")
		return
	}

	form := user.PasswordChangeForm{
		OldPassword: r.PostFormValue("oldPassword"),
		NewPassword: r.PostFormValue("newPassword"),
	}

	result, err := h.cmd.ChangePassword.Handle(ctx, cmd.ChangePassword{UserID: target, Form: form})
	if err != nil {
		h.formError(w, r, span, err, "password change failed", func(errs map[string]string, status int) {
			h.renderer.HTML(w, r, status, "change_password.tmpl", passwordPage{
				Errors: errs,
				Action: r.URL.Path,
			})
		})
		return
	}

	switch {
	case result.Changed:
		if self {
			http.Redirect(w, r, "/change-password?notice=password_changed", http.StatusSeeOther)
		} else {
			http.Redirect(w, r, "/users?notice=password_changed", http.StatusSeeOther)
		}
	case result.Message != "":
		// The remote API explains 400s in the body; show it as-is.
		h.renderer.HTML(w, r, http.StatusBadRequest, "change_password.tmpl", passwordPage{
			Errors: map[string]string{"": result.Message},
			Action: r.URL.Path,
		})
	default:
		h.renderer.HTML(w, r, rejectionStatus(result.Status), "change_password.tmpl", passwordPage{
			Errors: map[string]string{"": h.localize(r, "remote_rejected", map[string]any{"Status": result.Status})},
			Action: r.URL.Path,
		})
	}
}

// passwordTarget resolves whose password is being changed: the session
// user's on the plain route, the addressed user's on the id route.
func (h *HTTP) passwordTarget(r *http.Request) (uuid.UUID, bool, error) {
	if chi.URLParam(r, "id") == "" {
		session, ok := ctxs.UserFromCtx(r.Context())
		if !ok {
			return uuid.Nil, false, errorx.NewUnauthorized()
		}
		return session.ID, true, nil
	}

	id, err := pathID(r)
	if err != nil {
		return uuid.Nil, false, errorx.NewInvalidRequest().WithCause(err)
	}
	return id, false, nil
}

// formError redisplays a form for validation failures and rejected
// submissions; anything else gets the error page.
func (h *HTTP) formError(w http.ResponseWriter, r *http.Request, span trace.Span, err error, msg string,
	redisplay func(errs map[string]string, status int),
) {
	otelx.RecordSpanError(span, err, msg)
	h.logger.WarnContext(r.Context(), msg, "error", err.Error())

	lang := r.Header.Get("Accept-Language")

	var valErrs validation.Errors
	if errors.As(err, &valErrs) {
		redisplay(h.errhandler.FieldErrors(lang, err), http.StatusBadRequest)
		return
	}

	var appErr *errorx.I18nError
	if errors.As(err, &appErr) && appErr.HTTPStatusCode() < http.StatusInternalServerError {
		redisplay(h.errhandler.FieldErrors(lang, err), appErr.HTTPStatusCode())
		return
	}

	h.renderError(w, r, span, err, msg)
}

// renderError maps err onto the standalone error page. Upstream faults keep
// their 502/504 statuses so a failed listing is never mistaken for an empty
// one.
func (h *HTTP) renderError(w http.ResponseWriter, r *http.Request, span trace.Span, err error, msg string) {
	otelx.RecordSpanError(span, err, msg)
	h.logger.ErrorContext(r.Context(), msg, "error", err.Error())

	localizer := h.errhandler.Localizer(r.Header.Get("Accept-Language"))

	status := http.StatusInternalServerError
	message := ""

	var appErr *errorx.I18nError
	if errors.As(err, &appErr) {
		status = appErr.HTTPStatusCode()
		message = appErr.Localize(localizer)
	} else {
		internalErr := errorx.NewInternalError().WithCause(err)
		message = internalErr.Localize(localizer)
	}

	h.renderer.HTML(w, r, status, "error.tmpl", errorPage{
		Title:   http.StatusText(status),
		Message: message,
	})
}

func (h *HTTP) notice(r *http.Request) string {
	id, ok := notices[r.URL.Query().Get("notice")]
	if !ok {
		return ""
	}
	return h.localize(r, id, nil)
}

func (h *HTTP) localize(r *http.Request, id string, data map[string]any) string {
	msg, err := h.errhandler.Localizer(r.Header.Get("Accept-Language")).Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return ""
	}
	return msg
}

func parseRegisterForm(r *http.Request) user.RegisterForm {
	return user.RegisterForm{
		FirstName: r.PostFormValue("firstName"),
		LastName:  r.PostFormValue("lastName"),
		Email:     r.PostFormValue("email"),
		Password:  r.PostFormValue("password"),
		Role:      role.Role(r.PostFormValue("role")),
		PhoneNo:   r.PostFormValue("phoneNo"),
		Gender:    gender.Gender(r.PostFormValue("gender")),
		Address:   r.PostFormValue("address"),
		CountryID: atoi(r.PostFormValue("countryId")),
		StateID:   atoi(r.PostFormValue("stateId")),
		CityID:    atoi(r.PostFormValue("cityId")),
		AreaID:    atoi(r.PostFormValue("areaId")),
	}
}

func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

func returnKey(key string) string {
	if _, ok := returnDestinations[key]; ok {
		return key
	}
	return ""
}

func returnPath(key string) string {
	if p, ok := returnDestinations[key]; ok {
		return p
	}
	return "/users"
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

// rejectionStatus echoes a remote rejection's status when it is a client
// error; anything else becomes a bad gateway.
func rejectionStatus(remote int) int {
	if remote >= 400 && remote < 500 {
		return remote
	}
	return http.StatusBadGateway
}
