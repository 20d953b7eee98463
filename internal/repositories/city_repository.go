package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intdb "github.com/Abhisheklodhi2001/Austria-Express/internal/db"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain/models"
)

type CityRepository struct {
	DB *sql.DB
}

func (r CityRepository) db() *sql.DB {
	return pickDB(r.DB)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search finds active cities whose name starts with prefix.
func (r CityRepository) Search(ctx context.Context, prefix string, fromUkraine *bool, limit int) ([]models.City, error) {
	where := []string{"is_active = 1", "is_deleted = 0", "city_name LIKE ?"}
	args := []any{likeEscaper.Replace(prefix) + "%"}
	if fromUkraine != nil {
		where = append(where, "from_ukraine = ?")
		args = append(args, *fromUkraine)
	}
	args = append(args, limit)

	rows, err := r.db().QueryContext(ctx, `
		SELECT city_id, city_name, from_ukraine, is_active, is_deleted
		FROM city
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY city_name ASC
		LIMIT ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("search cities: %w", err)
	}
	defer rows.Close()
	return scanCities(rows)
}

// Destinations lists the distinct end cities of the live ticket rows that
// start at cityID. When priceColumn is set, rows without a value in it are
// ignored.
func (r CityRepository) Destinations(ctx context.Context, cityID domain.ID, priceColumn string) ([]models.City, error) {
	where := []string{"t.startPointCityId = ?", "t.is_deleted = 0", "c.is_deleted = 0"}
	if priceColumn != "" {
		if !intdb.ValidIdentifier(priceColumn) {
			return nil, domain.ValidationError{Field: "price_column", Msg: "invalid column name"}
		}
		where = append(where, "t."+intdb.QuoteIdent(priceColumn)+" IS NOT NULL")
	}

	rows, err := r.db().QueryContext(ctx, `
		SELECT DISTINCT c.city_id, c.city_name, c.from_ukraine, c.is_active, c.is_deleted
		FROM ticket_type t
		JOIN city c ON c.city_id = t.endPointCityId
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY c.city_name ASC`, cityID)
	if err != nil {
		return nil, fmt.Errorf("query destinations: %w", err)
	}
	defer rows.Close()
	return scanCities(rows)
}

func scanCities(rows *sql.Rows) ([]models.City, error) {
	out := []models.City{}
	for rows.Next() {
		var c models.City
		if err := rows.Scan(&c.ID, &c.Name, &c.FromUkraine, &c.IsActive, &c.IsDeleted); err != nil {
			return out, fmt.Errorf("scan city: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
