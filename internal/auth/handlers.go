package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/signup/", func(c *fiber.Ctx) error {
		return c.Render("signup", ViewContext(c, fiber.Map{}))
	})

	r.Post("/signup/", func(c *fiber.Ctx) error {
		form := SignupForm{
			Email:    c.FormValue("email"),
			Username: c.FormValue("username"),
			Password: c.FormValue("password"),
			FullName: c.FormValue("full_name"),
		}

		errs := map[string]string{}
		if form.Email == "" {
			errs["email"] = "Email is required"
		}
		if form.Username == "" {
			errs["username"] = "Username is required"
		}
		if form.Password == "" {
			errs["password"] = "Password is required"
		}
		if len(errs) > 0 {
			return c.Render("signup", ViewContext(c, fiber.Map{"Errors": errs, "Form": form}))
		}

		user, err := svc.Register(c.Context(), form)
		if err != nil {
			errs["username"] = "Could not create account"
			return c.Render("signup", ViewContext(c, fiber.Map{"Errors": errs, "Form": form}))
		}

		if err := setSessionCookie(c, svc, user); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Redirect("/", fiber.StatusFound)
	})

	r.Get("/login/", func(c *fiber.Ctx) error {
		return c.Render("login", ViewContext(c, fiber.Map{"Next": c.Query("next")}))
	})

	r.Post("/login/", func(c *fiber.Ctx) error {
		next := c.FormValue("next")
		user, err := svc.Login(c.Context(), c.FormValue("username"), c.FormValue("password"))
		if err != nil {
			return c.Render("login", ViewContext(c, fiber.Map{
				"Errors":   map[string]string{"username": "Invalid username or password"},
				"Username": c.FormValue("username"),
				"Next":     next,
			}))
		}

		if err := setSessionCookie(c, svc, user); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if next == "" {
			next = "/"
		}
		return c.Redirect(next, fiber.StatusFound)
	})

	r.Get("/logout/", func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     CookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
		})
		return c.Redirect("/", fiber.StatusFound)
	})
}

func setSessionCookie(c *fiber.Ctx, svc *Service, user User) error {
	token, err := svc.SessionToken(user.ID, user.Username)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(sessionTTL),
		HTTPOnly: true,
	})
	return nil
}

// ViewContext injects the signed-in username into template data so the layout
// can render the nav state.
func ViewContext(c *fiber.Ctx, data fiber.Map) fiber.Map {
	if id, ok := Current(c); ok {
		data["CurrentUser"] = id.Username
	}
	return data
}
