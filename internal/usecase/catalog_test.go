package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"

	domainErrors "github.com/polkiloo/pharmanet/internal/domain/errors"
	"github.com/polkiloo/pharmanet/internal/domain/model"
	"github.com/polkiloo/pharmanet/internal/test"
)

func TestCatalogGetValidatesCode(t *testing.T) {
	repo := &test.ProductRepositoryStub{Products: map[string]model.Product{codeA: {Code: codeA}}}
	uc := NewCatalogUseCase(repo)

	if _, err := uc.Get(context.Background(), "abc"); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := uc.Get(context.Background(), codeB); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	p, err := uc.Get(context.Background(), codeA)
	if err != nil || p.Code != codeA {
		t.Fatalf("unexpected result %+v %v", p, err)
	}
}

func TestCatalogListPassesFilter(t *testing.T) {
	var got model.ProductFilter
	repo := &test.ProductRepositoryStub{ListFn: func(_ context.Context, f model.ProductFilter) ([]model.Product, error) {
		got = f
		return nil, nil
	}}
	if _, err := NewCatalogUseCase(repo).List(context.Background(), model.ProductFilter{Query: "ibu"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Query != "ibu" {
		t.Fatalf("expected filter to be forwarded, got %+v", got)
	}
}

func TestCatalogSeed(t *testing.T) {
	repo := &test.ProductRepositoryStub{}
	uc := NewCatalogUseCase(repo)

	products, err := DecodeSeed(strings.NewReader(`[
		{"package_ndc_11":"00000000001","descripcion":"Paracetamol 500mg","price":10.5,"stock":5,"selling_size":20},
		{"package_ndc_11":"00000000002","descripcion":"Ibuprofen","price":"3.20","stock":0}
	]`))
	if err != nil {
		t.Fatalf("decode seed: %v", err)
	}
	if len(products) != 2 || products[0].SellingSize == nil || *products[0].SellingSize != 20 {
		t.Fatalf("unexpected products %+v", products)
	}
	if err := uc.Seed(context.Background(), products); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !repo.Products[codeA].Price.Equal(dec("10.5")) || repo.Products[codeB].Stock != 0 {
		t.Fatalf("unexpected stored products %+v", repo.Products)
	}

	if err := uc.Seed(context.Background(), []model.Product{{Code: "1"}}); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for bad code, got %v", err)
	}
	if err := uc.Seed(context.Background(), []model.Product{{Code: codeA, Stock: -1}}); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for negative stock, got %v", err)
	}

	if _, err := DecodeSeed(strings.NewReader(`{`)); err == nil {
		t.Fatal("expected decode error")
	}
}
