// Dashboard de inventario en terminal: front end de línea de comandos sobre
// el estado del cliente (internal/dashboard) contra la API configurada.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/inventario-lite/internal/dashboard"
	"github.com/jhoicas/inventario-lite/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}

	d := dashboard.New(dashboard.NewClient(cfg.Client.APIBaseURL))
	fmt.Printf("Inventario — API %s\n", cfg.Client.APIBaseURL)

	d.Load()
	if d.LoadError != "" {
		fmt.Println("!", d.LoadError)
	}
	render(d)

	sc := bufio.NewScanner(os.Stdin)
	prompt()
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			prompt()
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")
		switch cmd {
		case "quit", "q":
			return
		case "help", "h":
			usage()
		case "reload":
			d.Load()
			if d.LoadError != "" {
				fmt.Println("!", d.LoadError)
			}
			render(d)
		case "list", "ls":
			render(d)
		case "add":
			// add <name> <qty> <price>  (el nombre no admite espacios aquí)
			fields := strings.Fields(rest)
			if len(fields) != 3 {
				fmt.Println("uso: add <name> <qty> <price>")
				break
			}
			d.NameInput, d.QtyInput, d.PriceInput = fields[0], fields[1], fields[2]
			d.SubmitCreate()
			if d.FormError != "" {
				fmt.Println("!", d.FormError)
			}
			render(d)
		case "edit":
			fields := strings.Fields(rest)
			if len(fields) != 4 {
				fmt.Println("uso: edit <n> <name> <qty> <price>")
				break
			}
			id, ok := idAt(d, fields[0])
			if !ok {
				break
			}
			if !d.BeginEdit(id) {
				fmt.Println("! item no está en el espejo local")
				break
			}
			d.EditName, d.EditQty, d.EditPrice = fields[1], fields[2], fields[3]
			d.SubmitEdit()
			if d.EditError != "" {
				fmt.Println("!", d.EditError)
				d.CancelEdit()
			}
			render(d)
		case "del":
			id, ok := idAt(d, strings.TrimSpace(rest))
			if !ok {
				break
			}
			d.RequestDelete(id)
			fmt.Print("¿Eliminar item? [y/N] ")
			if !sc.Scan() || strings.ToLower(strings.TrimSpace(sc.Text())) != "y" {
				d.CancelDelete()
				fmt.Println("cancelado")
				break
			}
			d.ConfirmDelete()
			if d.DeleteError != "" {
				fmt.Println("!", d.DeleteError)
			}
			render(d)
		case "search":
			d.Search = strings.TrimSpace(rest)
			render(d)
		case "lowstock":
			d.LowStock = !d.LowStock
			fmt.Println("filtro de stock bajo:", onOff(d.LowStock))
			render(d)
		case "total":
			fmt.Println("total general:", d.GrandTotal().StringFixed(2))
		default:
			fmt.Println("comando desconocido; help para la lista")
		}
		prompt()
	}
}

// idAt traduce el número de fila visible al id del item.
func idAt(d *dashboard.Dashboard, arg string) (string, bool) {
	visible := d.VisibleItems()
	var n int
	if _, err := fmt.Sscanf(arg, "%d", &n); err != nil || n < 1 || n > len(visible) {
		fmt.Println("uso: indicar el número de fila de la lista visible")
		return "", false
	}
	return visible[n-1].ID, true
}

func render(d *dashboard.Dashboard) {
	visible := d.VisibleItems()
	if len(visible) == 0 {
		fmt.Println("(sin items)")
	}
	for i, it := range visible {
		fmt.Printf("%2d. %-20s qty %-8s precio %s\n",
			i+1, it.Name, it.Qty.String(), it.Price.StringFixed(2))
	}
	fmt.Printf("    %d visibles de %d — total general %s\n",
		len(visible), len(d.Items), d.GrandTotal().StringFixed(2))
}

func usage() {
	fmt.Println(`comandos:
  list | ls                     mostrar items visibles
  add <name> <qty> <price>      crear item
  edit <n> <name> <qty> <price> reemplazar el item de la fila n
  del <n>                       eliminar el item de la fila n (pide confirmación)
  search <término>              filtrar por nombre (vacío = todos)
  lowstock                      alternar filtro qty < 5
  total                         total general (qty × price)
  reload                        recargar desde la API
  quit`)
}

func onOff(b bool) string {
	if b {
		return "activo"
	}
	return "inactivo"
}

func prompt() { fmt.Print("> ") }
