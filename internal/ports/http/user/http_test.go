package userhttp_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userapp "gitlab.com/garageonwheels/gow-web/internal/application/user"
	"gitlab.com/garageonwheels/gow-web/internal/domain/user"
	"gitlab.com/garageonwheels/gow-web/internal/domain/valueobject/gender"
	"gitlab.com/garageonwheels/gow-web/internal/domain/valueobject/role"
	"gitlab.com/garageonwheels/gow-web/internal/ports/http/middlewares"
	"gitlab.com/garageonwheels/gow-web/internal/ports/http/render"
	userhttp "gitlab.com/garageonwheels/gow-web/internal/ports/http/user"
	"gitlab.com/garageonwheels/gow-web/pkg/errorx"
	"gitlab.com/garageonwheels/gow-web/pkg/httpx"
	"gitlab.com/garageonwheels/gow-web/tests/mocks"
)

var testSecret = []byte("test-session-secret")

func setupRouter(t *testing.T, api *mocks.GarageAPI) chi.Router {
	t.Helper()

	renderer, err := render.New()
	require.NoError(t, err)

	errhandler := httpx.NewErrorHandler()
	mw := middlewares.NewMiddleware(middlewares.Args{
		Secret:     testSecret,
		Errhandler: errhandler,
	})

	h := userhttp.NewHTTP(userhttp.Args{
		App:        userapp.NewApp(userapp.Args{API: api}),
		Middleware: mw,
		Renderer:   renderer,
		Errhandler: errhandler,
	})

	r := chi.NewRouter()
	h.Route(r)
	return r
}

func sessionCookie(t *testing.T, id uuid.UUID, r role.Role) *http.Cookie {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":       "gow_web",
		"sub":       "user",
		"uid":       id.String(),
		"user_role": string(r),
		"exp":       time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)

	return &http.Cookie{Name: middlewares.SessionCookie, Value: signed}
}

func postForm(path string, values url.Values, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func getPage(path string, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept", "text/html")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func validUserForm() url.Values {
	return url.Values{
		"firstName": {"John"},
		"lastName":  {"Carter"},
		"email":     {"john.carter@example.com"},
		"password":  {"Sup3rSecret!"},
		"role":      {"Customer"},
		"phoneNo":   {"+77001234567"},
		"gender":    {"Male"},
		"address":   {"12 Garage Lane"},
		"countryId": {"1"},
		"stateId":   {"2"},
		"cityId":    {"3"},
		"areaId":    {"4"},
	}
}

func seededUser(id uuid.UUID) user.User {
	return user.User{
		ID:              id,
		FirstName:       "Jane",
		LastName:        "Miller",
		Email:           "jane.miller@example.com",
		Password:        "hashed-remote-side",
		Role:            role.Customer,
		PhoneNo:         "+77009876543",
		Gender:          gender.Female,
		Address:         "7 Service Road",
		CountryID:       1,
		StateID:         2,
		CityID:          3,
		AreaID:          4,
		IsEmailVerified: true,
	}
}

func TestCreate_HappyPath(t *testing.T) {
	t.Parallel()

	api := mocks.NewGarageAPI()
	router := setupRouter(t, api)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/users/create", validUserForm()))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc := rec.Header().Get("Location")
	assert.Contains(t, loc, "/account/verify-otp")
	assert.Contains(t, loc, "email="+url.QueryEscape("john.carter@example.com"))
	assert.Contains(t, loc, "notice=otp_sent")

	api.AssertCalls(t, "EmailExists", 1).
		AssertCalls(t, "CreateUser", 1).
		AssertCalls(t, "SendOTP", 1)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	t.Parallel()

	api := mocks.NewGarageAPI()
	api.ExistingEmails["john.carter@example.com"] = true
	router := setupRouter(t, api)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/users/create", validUserForm()))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email Already Exist.")
	api.AssertCalls(t, "CreateUser", 0).AssertCalls(t, "SendOTP", 0)
}

func TestCreate_InvalidForm_NoRemoteCalls(t *testing.T) {
	t.Parallel()

	api := mocks.NewGarageAPI()
	router := setupRouter(t, api)

	form := validUserForm()
	form.Set("email", "not-an-email")
	form.Set("password", "short")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/users/create", form))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	api.AssertCalls(t, "EmailExists", 0).
		AssertCalls(t, "CreateUser", 0).
		AssertCalls(t, "SendOTP", 0)
}

func TestCreate_OTPSendFails_StillRedirectsWithoutNotice(t *testing.T) {
	t.Parallel()

	api := mocks.NewGarageAPI()
	api.SendOTPErr = errorx.NewUpstreamServiceError()
	router := setupRouter(t, api)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/users/create", validUserForm()))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc := rec.Header().Get("Location")
	assert.Contains(t, loc, "/account/verify-otp")
	assert.NotContains(t, loc, "notice=otp_sent")
}

func TestVerifyOTP_WrongCode_PreservesEmail(t *testing.T) {
	t.Parallel()

	api := mocks.NewGarageAPI()
	api.VerifyStatus = http.StatusBadRequest
	router := setupRouter(t, api)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/account/verify-otp", url.Values{
		"email": {"john.carter@example.com"},
		"otp":   {"123456"},
	}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid OTP")
	assert.Contains(t, rec.Body.String(), "john.carter@example.com")
}

func TestVerifyOTP_Success(t *testing.T) {
	t.Parallel()

	api := mocks.NewGarageAPI()
	router := setupRouter(t, api)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/account/verify-otp", url.Values{
		"email": {"john.carter@example.com"},
		"otp":   {"123456"},
	}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/account/login?notice=email_verified", rec.Header().Get("Location"))
}

func TestResendOTP_RedirectsBackWithNotice(t *testing.T) {
	t.Parallel()

	api := mocks.NewGarageAPI()
	router := setupRouter(t, api)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/account/resend-otp", url.Values{
		"email": {"john.carter@example.com"},
	}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc := rec.Header().Get("Location")
	assert.Contains(t, loc, "/account/verify-otp")
	assert.Contains(t, loc, "notice=otp_sent")
	api.AssertCalls(t, "SendOTP", 1)
}

func TestAllUsers_RequiresSuperAdmin(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	api := mocks.NewGarageAPI().SeedUser(t, seededUser(id))
	router := setupRouter(t, api)

	t.Run("super admin sees listing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, getPage("/users", sessionCookie(t, uuid.New(), role.SuperAdmin)))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "jane.miller@example.com")
	})

	t.Run("customer is forbidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, getPage("/users", sessionCookie(t, uuid.New(), role.Customer)))

		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("anonymous browser is sent to login", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, getPage("/users"))

		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, middlewares.LoginPath, rec.Header().Get("Location"))
	})
}

func TestCustomers_GarageOwnerOnly(t *testing.T) {
	t.Parallel()

	api := mocks.NewGarageAPI().SeedUser(t, seededUser(uuid.New()))
	router := setupRouter(t, api)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, getPage("/users/customers", sessionCookie(t, uuid.New(), role.GarageOwner)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "jane.miller@example.com")
}

func TestListing_UpstreamFaultIsSurfaced(t *testing.T) {
	t.Parallel()

	api := mocks.NewGarageAPI()
	api.FailWith = errorx.NewUpstreamServiceError()
	router := setupRouter(t, api)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, getPage("/users", sessionCookie(t, uuid.New(), role.SuperAdmin)))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "unavailable")
}

func TestGarageOwnersJSON(t *testing.T) {
	t.Parallel()

	owner := seededUser(uuid.New())
	owner.Role = role.GarageOwner
	owner.Email = "owner@example.com"
	api := mocks.NewGarageAPI().SeedUser(t, owner)
	router := setupRouter(t, api)

	req := httptest.NewRequest(http.MethodGet, "/api/users/garage-owners", nil)
	req.AddCookie(sessionCookie(t, uuid.New(), role.SuperAdmin))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, rec.Body.String(), "owner@example.com")
}

func TestEdit_RedirectHonorsReturnTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		returnTo string
		wantLoc  string
	}{
		{name: "dashboard", returnTo: "dashboard", wantLoc: "/dashboard?notice=user_updated"},
		{name: "customers", returnTo: "customers", wantLoc: "/users/customers?notice=user_updated"},
		{name: "unknown falls back to users", returnTo: "http://evil.example.com", wantLoc: "/users?notice=user_updated"},
		{name: "empty falls back to users", returnTo: "", wantLoc: "/users?notice=user_updated"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id := uuid.New()
			api := mocks.NewGarageAPI().SeedUser(t, seededUser(id))
			router := setupRouter(t, api)

			form := validUserForm()
			form.Del("password")
			form.Set("returnTo", tt.returnTo)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, postForm("/users/"+id.String()+"/edit", form,
				sessionCookie(t, uuid.New(), role.SuperAdmin)))

			require.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.wantLoc, rec.Header().Get("Location"))
		})
	}
}

func TestEdit_KeepsVerificationAndPassword(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	api := mocks.NewGarageAPI().SeedUser(t, seededUser(id))
	router := setupRouter(t, api)

	form := validUserForm()
	form.Del("password")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/users/"+id.String()+"/edit", form,
		sessionCookie(t, uuid.New(), role.SuperAdmin)))

	require.Equal(t, http.StatusSeeOther, rec.Code)

	updated := api.Users[id]
	assert.True(t, updated.IsEmailVerified, "edit must not wipe the verification flag")
	assert.Equal(t, "hashed-remote-side", updated.Password, "edit must not blank the password")
	assert.Equal(t, "John", updated.FirstName)
}

func TestEdit_KeepsSoftDeleteFlag(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	deleted := seededUser(id)
	deleted.IsDelete = true
	api := mocks.NewGarageAPI().SeedUser(t, deleted)
	router := setupRouter(t, api)

	form := validUserForm()
	form.Del("password")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/users/"+id.String()+"/edit", form,
		sessionCookie(t, uuid.New(), role.SuperAdmin)))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.True(t, api.Users[id].IsDelete, "edit must not silently revive a soft-deleted record")
}

func TestEdit_RemoteRejectionRedisplaysForm(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	api := mocks.NewGarageAPI().SeedUser(t, seededUser(id))
	api.UpdateStatus = http.StatusConflict
	router := setupRouter(t, api)

	form := validUserForm()
	form.Del("password")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/users/"+id.String()+"/edit", form,
		sessionCookie(t, uuid.New(), role.SuperAdmin)))

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "rejected")
}

func TestProfile_EditsOwnRecordOnly(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	api := mocks.NewGarageAPI().SeedUser(t, seededUser(id))
	router := setupRouter(t, api)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/profile", url.Values{
		"firstName": {"Janet"},
		"lastName":  {"Miller"},
		"phoneNo":   {"+77009876543"},
		"gender":    {"Female"},
		"address":   {"7 Service Road"},
		"countryId": {"1"},
		"stateId":   {"2"},
		"cityId":    {"3"},
		"areaId":    {"4"},
	}, sessionCookie(t, id, role.Customer)))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard?notice=user_updated", rec.Header().Get("Location"))

	updated := api.Users[id]
	assert.Equal(t, "Janet", updated.FirstName)
	assert.Equal(t, "jane.miller@example.com", updated.Email, "profile edit must not change email")
	assert.Equal(t, role.Customer, updated.Role, "profile edit must not change role")
}

func TestDelete(t *testing.T) {
	t.Parallel()

	t.Run("success redirects with notice", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		api := mocks.NewGarageAPI().SeedUser(t, seededUser(id))
		router := setupRouter(t, api)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, postForm("/users/"+id.String()+"/delete", url.Values{},
			sessionCookie(t, uuid.New(), role.SuperAdmin)))

		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/users?notice=user_deleted", rec.Header().Get("Location"))
		assert.NotContains(t, api.Users, id)
	})

	t.Run("rejection renders error page", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		api := mocks.NewGarageAPI().SeedUser(t, seededUser(id))
		api.DeleteStatus = http.StatusBadRequest
		router := setupRouter(t, api)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, postForm("/users/"+id.String()+"/delete", url.Values{},
			sessionCookie(t, uuid.New(), role.SuperAdmin)))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "rejected")
	})
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	t.Run("self service success", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		api := mocks.NewGarageAPI().SeedUser(t, seededUser(id))
		router := setupRouter(t, api)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, postForm("/change-password", url.Values{
			"oldPassword": {"OldSecret1!"},
			"newPassword": {"NewSecret1!"},
		}, sessionCookie(t, id, role.Customer)))

		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/change-password?notice=password_changed", rec.Header().Get("Location"))
		api.AssertCalls(t, "ChangePassword", 1)
	})

	t.Run("remote 400 message is shown verbatim", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		api := mocks.NewGarageAPI().SeedUser(t, seededUser(id))
		api.ChangePasswordStatus = http.StatusBadRequest
		api.ChangePasswordBody = "Old password incorrect"
		router := setupRouter(t, api)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, postForm("/change-password", url.Values{
			"oldPassword": {"WrongSecret1!"},
			"newPassword": {"NewSecret1!"},
		}, sessionCookie(t, id, role.Customer)))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Old password incorrect")
	})

	t.Run("weak new password never reaches remote", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		api := mocks.NewGarageAPI().SeedUser(t, seededUser(id))
		router := setupRouter(t, api)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, postForm("/change-password", url.Values{
			"oldPassword": {"OldSecret1!"},
			"newPassword": {"weak"},
		}, sessionCookie(t, id, role.Customer)))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		api.AssertCalls(t, "ChangePassword", 0)
	})
}

func TestDashboard_ShowsAllowListedNoticeOnly(t *testing.T) {
	t.Parallel()

	api := mocks.NewGarageAPI()
	router := setupRouter(t, api)
	cookie := sessionCookie(t, uuid.New(), role.Customer)

	t.Run("known notice key renders banner", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, getPage("/dashboard?notice=user_updated", cookie))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "User successfully updated!")
	})

	t.Run("unknown notice key renders nothing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, getPage("/dashboard?notice="+url.QueryEscape("<script>alert(1)</script>"), cookie))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "alert(1)")
	})
}
