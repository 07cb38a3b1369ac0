package pgrepo

import (
	"context"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/pkg/uow"
)

type CatalogRepository struct {
	conn uow.DBTX
}

func NewCatalogRepository(conn uow.DBTX) *CatalogRepository {
	return &CatalogRepository{conn: conn}
}

// FindService возвращает услугу serviceID, только если она принадлежит ремесленнику artisanID.
func (c *CatalogRepository) FindService(
	ctx context.Context,
	serviceID, artisanID int64,
) (*domain.ServiceOffering, error) {
	var s domain.ServiceOffering
	err := c.conn.QueryRow(ctx,
		`SELECT id, artisan_id, name, price FROM services WHERE id = $1 AND artisan_id = $2`,
		serviceID, artisanID,
	).Scan(&s.ID, &s.ArtisanID, &s.Name, &s.Price)
	if err != nil {
		return nil, convertErr(err, "finding service %d of artisan %d", serviceID, artisanID)
	}
	return &s, nil
}
