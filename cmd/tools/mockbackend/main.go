// Command mockbackend serves fixture data for one backend microservice so the
// portal can run locally without the real services.
//
//	go run ./cmd/tools/mockbackend -service products -addr :3004
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"medisupply.com/portal/internal/modules/customers"
	"medisupply.com/portal/internal/modules/orders"
	"medisupply.com/portal/internal/modules/products"
)

func main() {
	service := flag.String("service", "products", "Service to mock (clients, products, orders)")
	addr := flag.String("addr", ":3004", "Listen address")
	flag.Parse()

	mux := http.NewServeMux()
	switch *service {
	case "clients":
		mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) { writeJSON(w, http.StatusOK, fixtureClients) })
	case "products":
		registerProducts(mux)
	case "orders":
		registerOrders(mux, &orderBook{byID: map[string]orders.Order{}})
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown service %q\n", *service)
		os.Exit(1)
	}

	fmt.Printf("Mock %s service listening on %s\n", *service, *addr)
	srv := &http.Server{Addr: *addr, Handler: logRequests(mux), ReadHeaderTimeout: 5 * time.Second}
	log.Fatal(srv.ListenAndServe())
}

var fixtureClients = []customers.InstitutionalClient{
	{ClientID: "c-001", Name: "Hospital San Ignacio", TaxID: "900123456", Country: "CO", Level: "IV", Specialty: "General", Location: "Bogotá"},
	{ClientID: "c-002", Name: "Clínica del Country", TaxID: "900654321", Country: "CO", Level: "III", Specialty: "Cardiology", Location: "Bogotá"},
	{ClientID: "c-003", Name: "Hospital Metropolitano", TaxID: "1790012345", Country: "EC", Level: "II", Specialty: "Pediatrics", Location: "Quito"},
}

var fixtureProducts = []products.Product{
	{SKU: "MED-001", Name: "Amoxicilina 500mg", ProductType: "medication", Batch: "L2401", UnitValue: decimal.RequireFromString("12.50"), Stock: 120, ExpirationDate: "2027-03-31", Status: "available", Warehouse: "w-1", WarehouseName: "Bogotá Norte"},
	{SKU: "MED-002", Name: "Ibuprofeno 400mg", ProductType: "medication", Batch: "L2402", UnitValue: decimal.RequireFromString("8.90"), Stock: 40, ExpirationDate: "2026-12-31", Status: "available", Warehouse: "w-1", WarehouseName: "Bogotá Norte"},
	{SKU: "SUP-010", Name: "Guantes de nitrilo (caja)", ProductType: "supply", Batch: "G0310", UnitValue: decimal.RequireFromString("6.75"), Stock: 0, ExpirationDate: "2028-01-31", Status: "out_of_stock", Warehouse: "w-2", WarehouseName: "Medellín"},
}

func registerProducts(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		name := strings.ToLower(r.URL.Query().Get("product_name"))
		out := []products.Product{}
		for _, p := range fixtureProducts {
			if name == "" || strings.Contains(strings.ToLower(p.Name), name) {
				out = append(out, p)
			}
		}
		writeJSON(w, http.StatusOK, out)
	})
	mux.HandleFunc("GET /search", func(w http.ResponseWriter, r *http.Request) {
		q := strings.ToLower(r.URL.Query().Get("q"))
		out := []products.Product{}
		for _, p := range fixtureProducts {
			if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.SKU), q) {
				out = append(out, p)
			}
		}
		writeJSON(w, http.StatusOK, out)
	})
	mux.HandleFunc("GET /{sku}", func(w http.ResponseWriter, r *http.Request) {
		for _, p := range fixtureProducts {
			if p.SKU == r.PathValue("sku") {
				writeJSON(w, http.StatusOK, p)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "product not found"})
	})
}

type orderBook struct {
	mu   sync.Mutex
	byID map[string]orders.Order
}

func registerOrders(mux *http.ServeMux, book *orderBook) {
	mux.HandleFunc("POST /orders/", func(w http.ResponseWriter, r *http.Request) {
		var req orders.OrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
			return
		}
		now := time.Now().UTC().Format(time.RFC3339)
		o := orders.Order{
			ID: uuid.NewString(), Priority: req.Priority, Products: req.Products, OrderStatus: req.OrderStatus,
			Country: req.Country, City: req.City, Address: req.Address, DateEstimated: req.DateEstimated,
			IDClient: req.IDClient, IDVendor: req.IDVendor, CreatedAt: now, UpdatedAt: now,
		}
		book.mu.Lock()
		book.byID[o.ID] = o
		book.mu.Unlock()
		writeJSON(w, http.StatusCreated, orders.OrderResponse{ID: o.ID, Message: "Order created", Order: &o})
	})
	mux.HandleFunc("GET /orders", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, book.filter(func(orders.Order) bool { return true }))
	})
	mux.HandleFunc("GET /orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		book.mu.Lock()
		o, ok := book.byID[r.PathValue("id")]
		book.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "order not found"})
			return
		}
		writeJSON(w, http.StatusOK, o)
	})
	mux.HandleFunc("GET /client/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		writeJSON(w, http.StatusOK, book.filter(func(o orders.Order) bool { return o.IDClient == id }))
	})
	mux.HandleFunc("PATCH /orders/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Status orders.Status `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
			return
		}
		book.mu.Lock()
		defer book.mu.Unlock()
		o, ok := book.byID[r.PathValue("id")]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "order not found"})
			return
		}
		o.OrderStatus = body.Status
		o.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		book.byID[o.ID] = o
		writeJSON(w, http.StatusOK, o)
	})
}

func (b *orderBook) filter(keep func(orders.Order) bool) []orders.Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []orders.Order{}
	for _, o := range b.byID {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Printf("%s %s\n", r.Method, r.URL.RequestURI())
		next.ServeHTTP(w, r)
	})
}
