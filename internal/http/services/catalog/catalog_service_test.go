package catalog

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "github.com/dropDatabas3/mercadito/internal/http/dto/catalog"
	"github.com/dropDatabas3/mercadito/internal/store/core"
)

// fakeProductRepo reproduce la semántica del store: orden estable por id,
// búsqueda por substring case-insensitive en name/description/category.
type fakeProductRepo struct {
	products []core.Product
	nextID   int
}

func (f *fakeProductRepo) Create(_ context.Context, in core.CreateProductInput) (*core.Product, error) {
	f.nextID++
	p := core.Product{
		ID:          fmt.Sprintf("p%03d", f.nextID),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
	}
	f.products = append(f.products, p)
	return &p, nil
}

func (f *fakeProductRepo) matches(p core.Product, q string) bool {
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Category), q)
}

func (f *fakeProductRepo) List(_ context.Context, q core.ListQuery) ([]core.Product, int64, error) {
	var filtered []core.Product
	for _, p := range f.products {
		if q.Search == "" || f.matches(p, q.Search) {
			filtered = append(filtered, p)
		}
	}
	total := int64(len(filtered))

	start := q.Skip
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return filtered[start:end], total, nil
}

func (f *fakeProductRepo) find(id string) int {
	for i, p := range f.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*core.Product, error) {
	if !strings.HasPrefix(id, "p") {
		return nil, core.ErrInvalidID
	}
	if i := f.find(id); i >= 0 {
		p := f.products[i]
		return &p, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeProductRepo) Update(_ context.Context, id string, patch core.ProductPatch) (*core.Product, error) {
	if !strings.HasPrefix(id, "p") {
		return nil, core.ErrInvalidID
	}
	i := f.find(id)
	if i < 0 {
		return nil, core.ErrNotFound
	}
	if patch.Name != nil {
		f.products[i].Name = *patch.Name
	}
	if patch.Description != nil {
		f.products[i].Description = *patch.Description
	}
	if patch.Price != nil {
		f.products[i].Price = *patch.Price
	}
	if patch.Category != nil {
		f.products[i].Category = *patch.Category
	}
	p := f.products[i]
	return &p, nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	if !strings.HasPrefix(id, "p") {
		return core.ErrInvalidID
	}
	i := f.find(id)
	if i < 0 {
		return core.ErrNotFound
	}
	f.products = append(f.products[:i], f.products[i+1:]...)
	return nil
}

func seeded(t *testing.T, n int) (Service, *fakeProductRepo) {
	t.Helper()
	repo := &fakeProductRepo{}
	svc := NewService(Deps{Products: repo})
	for i := 0; i < n; i++ {
		_, err := svc.Create(context.Background(), dto.CreateProductRequest{
			Name:     fmt.Sprintf("Producto %02d", i),
			Price:    float64(i) + 0.99,
			Category: "general",
		})
		require.NoError(t, err)
	}
	return svc, repo
}

func TestCreate_RequiresName(t *testing.T) {
	svc, _ := seeded(t, 0)

	_, err := svc.Create(context.Background(), dto.CreateProductRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrMissingProductFields)
}

func TestList_Pagination(t *testing.T) {
	svc, _ := seeded(t, 25)
	ctx := context.Background()

	out, err := svc.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, out.Products, 10)
	assert.Equal(t, int64(25), out.Total)
	assert.Equal(t, int64(1), out.Page)
	assert.Equal(t, int64(10), out.Limit)
	assert.Equal(t, int64(3), out.TotalPages)

	// Última página parcial
	out, err = svc.List(ctx, 3, 10)
	require.NoError(t, err)
	assert.Len(t, out.Products, 5)

	// Página más allá del final: vacía, mismo total
	out, err = svc.List(ctx, 9, 10)
	require.NoError(t, err)
	assert.Empty(t, out.Products)
	assert.Equal(t, int64(25), out.Total)
}

func TestList_ClampsPageAndLimit(t *testing.T) {
	svc, _ := seeded(t, 5)
	ctx := context.Background()

	// page/limit fuera de rango caen a 1/10
	out, err := svc.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Page)
	assert.Equal(t, int64(10), out.Limit)

	out, err = svc.List(ctx, -3, -7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Page)
	assert.Equal(t, int64(10), out.Limit)

	// limit se recorta al máximo
	out, err = svc.List(ctx, 1, 10000)
	require.NoError(t, err)
	assert.Equal(t, maxLimit, out.Limit)
}

func TestList_EmptyCatalog(t *testing.T) {
	svc, _ := seeded(t, 0)

	out, err := svc.List(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, out.Products)
	assert.Equal(t, int64(0), out.Total)
	assert.Equal(t, int64(0), out.TotalPages)
}

func TestSearch_FiltersAndPaginates(t *testing.T) {
	repo := &fakeProductRepo{}
	svc := NewService(Deps{Products: repo})
	ctx := context.Background()

	for _, in := range []dto.CreateProductRequest{
		{Name: "Yerba mate", Description: "orgánica", Category: "almacen", Price: 8},
		{Name: "Café molido", Description: "tueste medio", Category: "almacen", Price: 12},
		{Name: "Mochila", Description: "urbana", Category: "accesorios", Price: 45},
	} {
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	// Substring case-insensitive sobre name
	out, err := svc.Search(ctx, "YERBA", 1, 10)
	require.NoError(t, err)
	require.Len(t, out.Products, 1)
	assert.Equal(t, "Yerba mate", out.Products[0].Name)

	// Match por category
	out, err = svc.Search(ctx, "almacen", 1, 10)
	require.NoError(t, err)
	assert.Len(t, out.Products, 2)
	assert.Equal(t, int64(2), out.Total)

	// Sin matches: lista vacía, no error
	out, err = svc.Search(ctx, "zzz", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, out.Products)
	assert.Equal(t, int64(0), out.Total)
}

func TestSearch_EmptyQuery(t *testing.T) {
	svc, _ := seeded(t, 1)

	_, err := svc.Search(context.Background(), "", 1, 10)
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = svc.Search(context.Background(), "   ", 1, 10)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestGetByID_MapsStoreErrors(t *testing.T) {
	svc, _ := seeded(t, 1)
	ctx := context.Background()

	_, err := svc.GetByID(ctx, "p999")
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = svc.GetByID(ctx, "not-an-id")
	assert.ErrorIs(t, err, ErrInvalidProductID)
}

func TestUpdate_PartialPatch(t *testing.T) {
	svc, repo := seeded(t, 1)
	ctx := context.Background()
	id := repo.products[0].ID
	originalName := repo.products[0].Name

	newPrice := 99.99
	out, err := svc.Update(ctx, id, dto.UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)

	// Solo price cambió; el resto queda igual
	assert.Equal(t, newPrice, out.Price)
	assert.Equal(t, originalName, out.Name)
}

func TestUpdate_EmptyPatchKeepsRecord(t *testing.T) {
	svc, repo := seeded(t, 1)
	original := repo.products[0]

	// Un body sin claves produce un patch vacío (el store lo trata como no-op)
	require.True(t, dto.UpdateProductRequest{}.Patch().Empty())

	out, err := svc.Update(context.Background(), original.ID, dto.UpdateProductRequest{})
	require.NoError(t, err)
	assert.Equal(t, original, *out)
	assert.Equal(t, original, repo.products[0])
}

func TestDelete(t *testing.T) {
	svc, repo := seeded(t, 2)
	ctx := context.Background()
	id := repo.products[0].ID

	require.NoError(t, svc.Delete(ctx, id))
	assert.Len(t, repo.products, 1)

	// Borrar dos veces: la segunda es NotFound
	assert.ErrorIs(t, svc.Delete(ctx, id), ErrProductNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "bad id"), ErrInvalidProductID)
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, limit, want int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{100, 100, 1},
	}
	for _, c := range cases {
		if got := totalPages(c.total, c.limit); got != c.want {
			t.Fatalf("totalPages(%d,%d) got %d want %d", c.total, c.limit, got, c.want)
		}
	}
}
