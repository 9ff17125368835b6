package social

import (
	"errors"

	"github.com/Glaser1/Yatube/internal/auth"
	"github.com/Glaser1/Yatube/internal/posts"
	"github.com/Glaser1/Yatube/internal/shared/paginate"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

func RegisterRoutes(r fiber.Router, svc *Service, postSvc *posts.Service, pageSize int, requireUser fiber.Handler) {
	r.Get("/profile/:username/", func(c *fiber.Ctx) error {
		profile, err := svc.GetProfile(c.Context(), c.Params("username"))
		if errors.Is(err, pgx.ErrNoRows) {
			return fiber.ErrNotFound
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		total, err := postSvc.CountByAuthor(c.Context(), profile.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		page := paginate.New(paginate.ParseNumber(c.Query("page")), pageSize, total)
		list, err := postSvc.ListByAuthor(c.Context(), profile.ID, page.Limit(), page.Offset())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		// anonymous requesters follow no one
		following := false
		isSelf := false
		if id, ok := auth.Current(c); ok {
			isSelf = id.UserID == profile.ID
			if !isSelf {
				following, err = svc.IsFollowing(c.Context(), id.UserID, profile.ID)
				if err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, err.Error())
				}
			}
		}

		return c.Render("profile", auth.ViewContext(c, fiber.Map{
			"Profile":   profile,
			"Posts":     list,
			"Page":      page,
			"Following": following,
			"IsSelf":    isSelf,
		}))
	})

	r.Get("/profile/:username/follow/", requireUser, func(c *fiber.Ctx) error {
		profile, err := svc.GetProfile(c.Context(), c.Params("username"))
		if errors.Is(err, pgx.ErrNoRows) {
			return fiber.ErrNotFound
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		id, _ := auth.Current(c)
		// self-follow is a no-op, not an error
		if id.UserID != profile.ID {
			if err := svc.Follow(c.Context(), id.UserID, profile.ID); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
		}
		return c.Redirect("/profile/"+profile.Username+"/", fiber.StatusFound)
	})

	r.Get("/profile/:username/unfollow/", requireUser, func(c *fiber.Ctx) error {
		profile, err := svc.GetProfile(c.Context(), c.Params("username"))
		if errors.Is(err, pgx.ErrNoRows) {
			return fiber.ErrNotFound
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		id, _ := auth.Current(c)
		deleted, err := svc.Unfollow(c.Context(), id.UserID, profile.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if !deleted {
			return fiber.ErrNotFound
		}
		return c.Redirect("/profile/"+profile.Username+"/", fiber.StatusFound)
	})

	r.Get("/follow/", requireUser, func(c *fiber.Ctx) error {
		id, _ := auth.Current(c)

		total, err := postSvc.CountByFollowed(c.Context(), id.UserID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		page := paginate.New(paginate.ParseNumber(c.Query("page")), pageSize, total)
		list, err := postSvc.ListByFollowed(c.Context(), id.UserID, page.Limit(), page.Offset())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Render("follow", auth.ViewContext(c, fiber.Map{"Posts": list, "Page": page}))
	})
}
