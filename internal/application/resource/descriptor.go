// Package resource describe los seis recursos del back office como datos: ruta REST,
// verbo de actualización, textos de notificación y esquema del formulario.
package resource

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/jhoicas/backoffice-umkm/internal/application/form"
)

// Name identificador corto del recurso (también el argumento de la CLI).
type Name string

const (
	Users      Name = "users"
	Customers  Name = "customers"
	Products   Name = "products"
	Orders     Name = "orders"
	OrderItems Name = "order-items"
	Categories Name = "categories"
)

// Messages textos de los toasts. Load es el aviso de error de carga.
type Messages struct {
	Created, Updated, Deleted                string
	CreateFailed, UpdateFailed, DeleteFailed string
	LoadFailed                               string
}

// Column columna de la tabla de listado.
type Column struct {
	Key   string
	Title string
	Money bool
}

// Descriptor todo lo que el cliente, el controlador y la vista necesitan saber de un recurso.
type Descriptor struct {
	Name         Name
	Title        string // título de la pantalla
	Noun         string // en minúsculas, para el diálogo de borrado
	Path         string // relativo a la base de la API, sin barra inicial
	IDField      string
	UpdateMethod string // PATCH o PUT
	// SequentialID el backend asigna ids numéricos (autoincremental) en vez de aceptar los del cliente.
	SequentialID bool
	Messages     Messages
	Columns      []Column
	Form         form.Schema
}

var registry = map[Name]Descriptor{}

func register(d Descriptor) Descriptor {
	if _, dup := registry[d.Name]; dup {
		panic("resource: descriptor duplicado " + string(d.Name))
	}
	registry[d.Name] = d
	return d
}

// DeletePrompt texto del diálogo de confirmación de borrado.
func (d Descriptor) DeletePrompt() string {
	return "Yakin ingin menghapus " + d.Noun + " ini?"
}

// Lookup busca un descriptor por nombre.
func Lookup(name string) (Descriptor, error) {
	d, ok := registry[Name(name)]
	if !ok {
		return Descriptor{}, fmt.Errorf("recurso desconocido %q (válidos: %v)", name, Names())
	}
	return d, nil
}

// All descriptores en el orden del menú lateral.
func All() []Descriptor {
	return []Descriptor{User, Customer, Product, Order, OrderItem, Category}
}

// Names nombres ordenados alfabéticamente.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, string(n))
	}
	sort.Strings(out)
	return out
}

var (
	User = register(Descriptor{
		Name: Users, Title: "Data User", Noun: "user", Path: "user", IDField: "id",
		UpdateMethod: http.MethodPatch, SequentialID: true,
		Messages: Messages{
			Created: "User berhasil ditambahkan", Updated: "User berhasil diupdate", Deleted: "User berhasil dihapus",
			CreateFailed: "Gagal menambahkan user", UpdateFailed: "Gagal mengupdate user", DeleteFailed: "Gagal menghapus user",
			LoadFailed: "Gagal memuat data user",
		},
		Columns: []Column{{Key: "name", Title: "Nama"}, {Key: "username", Title: "Username"}, {Key: "email", Title: "Email"}},
		Form: form.Schema{
			TitleCreate: "Tambah User", TitleEdit: "Edit User",
			Fields: []form.Field{
				{Key: "name", Label: "Nama", Kind: form.KindText, Required: true},
				{Key: "username", Label: "Username", Kind: form.KindText, Required: true},
				{Key: "email", Label: "Email", Kind: form.KindEmail, Required: true},
				{Key: "password", Label: "Password", Kind: form.KindPassword, RequiredOnCreate: true, WriteOnly: true},
			},
		},
	})

	Customer = register(Descriptor{
		Name: Customers, Title: "Data Customer", Noun: "customer", Path: "customers", IDField: "customer_id",
		UpdateMethod: http.MethodPatch,
		Messages: Messages{
			Created: "Customer berhasil ditambahkan", Updated: "Customer berhasil diperbarui", Deleted: "Customer berhasil dihapus",
			CreateFailed: "Gagal menambahkan customer", UpdateFailed: "Gagal memperbarui customer", DeleteFailed: "Gagal menghapus customer",
			LoadFailed: "Gagal memuat data customer",
		},
		Columns: []Column{{Key: "name", Title: "Nama"}, {Key: "email", Title: "Email"}, {Key: "phone", Title: "Telepon"}, {Key: "address", Title: "Alamat"}},
		Form: form.Schema{
			TitleCreate: "Tambah Customer", TitleEdit: "Edit Customer",
			Fields: []form.Field{
				{Key: "name", Label: "Nama", Kind: form.KindText, Required: true},
				{Key: "email", Label: "Email", Kind: form.KindEmail, Required: true},
				{Key: "password", Label: "Password", Kind: form.KindPassword, Required: true, CreateOnly: true, WriteOnly: true},
				{Key: "phone", Label: "Telepon", Kind: form.KindText, Required: true},
				{Key: "address", Label: "Alamat", Kind: form.KindText, Required: true},
			},
		},
	})

	Product = register(Descriptor{
		Name: Products, Title: "Data Produk", Noun: "produk", Path: "products", IDField: "product_id",
		UpdateMethod: http.MethodPatch,
		Messages: Messages{
			Created: "Produk berhasil ditambahkan", Updated: "Produk berhasil diperbarui", Deleted: "Produk berhasil dihapus",
			CreateFailed: "Gagal menambahkan produk", UpdateFailed: "Gagal memperbarui produk", DeleteFailed: "Gagal menghapus produk",
			LoadFailed: "Gagal memuat data produk",
		},
		Columns: []Column{{Key: "name", Title: "Nama"}, {Key: "description", Title: "Deskripsi"}, {Key: "price", Title: "Harga", Money: true}, {Key: "stock", Title: "Stok"}, {Key: "category_id", Title: "Kategori"}},
		Form: form.Schema{
			TitleCreate: "Tambah Produk", TitleEdit: "Edit Produk",
			Fields: []form.Field{
				{Key: "name", Label: "Nama Produk", Kind: form.KindText, Required: true},
				{Key: "description", Label: "Deskripsi", Kind: form.KindText},
				{Key: "price", Label: "Harga", Kind: form.KindDecimal, Rule: form.RuleNonNegative},
				{Key: "stock", Label: "Stok", Kind: form.KindInt, Rule: form.RuleNonNegative},
				{Key: "category_id", Label: "Kategori", Kind: form.KindReference, Ref: string(Categories), Required: true},
			},
		},
	})

	Order = register(Descriptor{
		Name: Orders, Title: "Data Pesanan", Noun: "pesanan", Path: "orders", IDField: "order_id",
		UpdateMethod: http.MethodPatch,
		Messages: Messages{
			Created: "Data pesanan berhasil ditambahkan", Updated: "Data pesanan berhasil diperbarui", Deleted: "Data pesanan berhasil dihapus",
			CreateFailed: "Gagal menambahkan data pesanan", UpdateFailed: "Gagal memperbarui data pesanan", DeleteFailed: "Gagal menghapus data pesanan",
			LoadFailed: "Gagal memuat data pesanan",
		},
		Columns: []Column{{Key: "customer_id", Title: "Customer"}, {Key: "order_date", Title: "Tanggal"}, {Key: "total_amount", Title: "Total", Money: true}, {Key: "status", Title: "Status"}},
		Form: form.Schema{
			TitleCreate: "Tambah Pesanan", TitleEdit: "Edit Pesanan",
			Fields: []form.Field{
				{Key: "customer_id", Label: "Customer", Kind: form.KindReference, Ref: string(Customers), Required: true},
				{Key: "order_date", Label: "Tanggal Pesanan", Kind: form.KindDate, Required: true},
				{Key: "total_amount", Label: "Total", Kind: form.KindDecimal, Rule: form.RuleNonNegative},
				{Key: "status", Label: "Status", Kind: form.KindEnum, Required: true, Options: []string{"pending", "diproses", "selesai", "batal"}},
			},
		},
	})

	OrderItem = register(Descriptor{
		Name: OrderItems, Title: "Item Pesanan", Noun: "item pesanan", Path: "order-items", IDField: "id",
		UpdateMethod: http.MethodPut, SequentialID: true,
		Messages: Messages{
			Created: "Item pesanan berhasil ditambahkan", Updated: "Item pesanan berhasil diperbarui", Deleted: "Item pesanan berhasil dihapus",
			CreateFailed: "Gagal menambahkan item pesanan", UpdateFailed: "Gagal memperbarui item pesanan", DeleteFailed: "Gagal menghapus item pesanan",
			LoadFailed: "Gagal memuat item pesanan",
		},
		Columns: []Column{{Key: "order_id", Title: "Pesanan"}, {Key: "product_id", Title: "Produk"}, {Key: "quantity", Title: "Jumlah"}, {Key: "price", Title: "Harga", Money: true}},
		Form: form.Schema{
			TitleCreate: "Tambah Item Pesanan", TitleEdit: "Edit Item Pesanan",
			Alert:       "Mohon isi semua field dengan benar.",
			Fields: []form.Field{
				{Key: "order_id", Label: "Pesanan", Kind: form.KindReference, Ref: string(Orders), Required: true},
				{Key: "product_id", Label: "Produk", Kind: form.KindReference, Ref: string(Products), Required: true},
				{Key: "quantity", Label: "Jumlah", Kind: form.KindInt, Rule: form.RulePositive},
				{Key: "price", Label: "Harga", Kind: form.KindDecimal, Rule: form.RuleNonNegative},
			},
		},
	})

	Category = register(Descriptor{
		Name: Categories, Title: "Data Kategori", Noun: "kategori", Path: "categories", IDField: "category_id",
		UpdateMethod: http.MethodPut, SequentialID: true,
		Messages: Messages{
			Created: "Kategori berhasil ditambahkan", Updated: "Kategori berhasil diperbarui", Deleted: "Kategori berhasil dihapus",
			CreateFailed: "Gagal menambahkan kategori", UpdateFailed: "Gagal memperbarui kategori", DeleteFailed: "Gagal menghapus kategori",
			LoadFailed: "Gagal memuat data kategori",
		},
		Columns: []Column{{Key: "name", Title: "Nama"}, {Key: "product_id", Title: "Produk"}, {Key: "description", Title: "Deskripsi"}},
		Form: form.Schema{
			TitleCreate: "Tambah Kategori", TitleEdit: "Edit Kategori",
			Alert:       "Nama dan Produk wajib diisi.",
			Fields: []form.Field{
				{Key: "product_id", Label: "Produk", Kind: form.KindReference, Ref: string(Products), Required: true},
				{Key: "name", Label: "Nama Kategori", Kind: form.KindText, Required: true},
				{Key: "description", Label: "Deskripsi", Kind: form.KindText},
			},
		},
	})
)
