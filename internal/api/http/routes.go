package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/openwx/weather-dashboard/internal/weather"
)

var validate = validator.New()

// recordRequest is the create/update payload. ID is required only for
// updates and checked in the handler.
type recordRequest struct {
	ID        int64  `json:"id"`
	Location  string `json:"location" validate:"required"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
}

type deleteRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/records", func(c *fiber.Ctx) error {
		records, err := service.ListRecords(c.Context())
		if err != nil {
			return errorJSON(c, fiber.StatusInternalServerError, err)
		}
		if records == nil {
			records = []weather.SearchRecord{}
		}
		return c.JSON(fiber.Map{"data": records})
	})

	v1.Post("/records", func(c *fiber.Ctx) error {
		var req recordRequest
		if err := bindRecordRequest(c, &req); err != nil {
			return errorJSON(c, fiber.StatusBadRequest, err)
		}

		rec, err := service.CreateRecord(c.Context(), req.Location, req.StartDate, req.EndDate)
		if err != nil {
			return errorJSON(c, recordStatus(err), err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": rec})
	})

	v1.Put("/records", func(c *fiber.Ctx) error {
		var req recordRequest
		if err := bindRecordRequest(c, &req); err != nil {
			return errorJSON(c, fiber.StatusBadRequest, err)
		}
		if req.ID <= 0 {
			return errorJSON(c, fiber.StatusBadRequest, errors.New("id is required"))
		}

		rec, err := service.UpdateRecord(c.Context(), req.ID, req.Location, req.StartDate, req.EndDate)
		if err != nil {
			return errorJSON(c, recordStatus(err), err)
		}
		return c.JSON(fiber.Map{"data": rec})
	})

	v1.Delete("/records", func(c *fiber.Ctx) error {
		var req deleteRequest
		if err := c.BodyParser(&req); err != nil {
			return errorJSON(c, fiber.StatusBadRequest, err)
		}
		if err := validate.Struct(req); err != nil {
			return errorJSON(c, fiber.StatusBadRequest, err)
		}

		if err := service.DeleteRecord(c.Context(), req.ID); err != nil {
			return errorJSON(c, recordStatus(err), err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Get("/records/export", func(c *fiber.Ctx) error {
		filename, csv, err := service.ExportCSV(c.Context())
		if err != nil {
			return errorJSON(c, fiber.StatusInternalServerError, err)
		}

		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.SendString(csv)
	})

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		query, err := parseLocationQuery(c)
		if err != nil {
			return errorJSON(c, fiber.StatusBadRequest, err)
		}

		conditions, err := service.CurrentWeather(c.Context(), query)
		if err != nil {
			switch {
			case errors.Is(err, weather.ErrLocationNotFound):
				return errorJSON(c, fiber.StatusNotFound, err)
			case errors.Is(err, weather.ErrUpstream):
				return errorJSON(c, fiber.StatusBadGateway, err)
			default:
				return errorJSON(c, fiber.StatusBadRequest, err)
			}
		}
		return c.JSON(conditions)
	})
}

func bindRecordRequest(c *fiber.Ctx, req *recordRequest) error {
	if err := c.BodyParser(req); err != nil {
		return err
	}
	return validate.Struct(req)
}

// parseLocationQuery picks one of the four search modes from the query
// string: lat+lon, zip, city[/state/country], or free text q.
func parseLocationQuery(c *fiber.Ctx) (weather.LocationQuery, error) {
	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if latStr != "" || lonStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return weather.LocationQuery{}, errors.New("invalid lat parameter")
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return weather.LocationQuery{}, errors.New("invalid lon parameter")
		}
		return weather.CoordinateQuery(lat, lon), nil
	}

	if zip := c.Query("zip"); zip != "" {
		return weather.ZipQuery(zip, c.Query("country")), nil
	}

	if city := c.Query("city"); city != "" {
		return weather.CityQuery(city, c.Query("state"), c.Query("country")), nil
	}

	if q := weather.FreeTextQuery(c.Query("q")); !q.IsZero() {
		return q, nil
	}

	return weather.LocationQuery{}, errors.New("location parameters are required: lat/lon, zip, city, or q")
}

// recordStatus maps a record-lifecycle failure onto the API contract:
// not-found gets its own status, everything else in the create/update/
// delete path is the caller's problem.
func recordStatus(err error) int {
	if errors.Is(err, weather.ErrRecordNotFound) {
		return fiber.StatusNotFound
	}
	return fiber.StatusBadRequest
}

func errorJSON(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
