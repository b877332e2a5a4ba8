package utils

import (
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strings"
)

// RecordIDPrefix Префикс идентификаторов серверов в наборе данных.
const RecordIDPrefix = "SRV-DPIM-"

var recordIDRegex = regexp.MustCompile(`^SRV-DPIM-\d{2,}$`)

// IsAlphaNumericOrSpecial Проверяет что в строке только большие и маленькие буквы английского алфавита, цифры и разрешённые спецсимволы.
func IsAlphaNumericOrSpecial(s string) bool {
	if len(s) == 0 {
		return false
	}

	allowedSpecial := "!@#$%^&*()_+-=[]{}|;:'\",.<>?/"

	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			continue
		}
		if strings.ContainsRune(allowedSpecial, r) {
			continue
		}
		return false
	}

	return true
}

// FormatRecordID Формирует идентификатор сервера по порядковому номеру (SRV-DPIM-01, SRV-DPIM-250).
func FormatRecordID(seq int) string {
	return fmt.Sprintf("%s%02d", RecordIDPrefix, seq)
}

// IsRecordID Проверяет формат идентификатора сервера.
func IsRecordID(s string) bool {
	return recordIDRegex.MatchString(s)
}

// ClientIP Адрес клиента без порта.
// Заголовок X-Forwarded-For учитывается только при trustForwarded: сервис стоит за доверенным прокси,
// который этот заголовок перезаписывает. Иначе клиент мог бы подставлять в него любой адрес.
func ClientIP(r *http.Request, trustForwarded bool) string {
	if !trustForwarded {
		return remoteHost(r)
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}

	return remoteHost(r)
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
