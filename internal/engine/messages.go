package engine

// User-visible wording lives here and nowhere else: validators and the
// repository only report outcomes, the engine decides what to say.
const (
	msgStart = "🏠 Главное меню\n\nВыберите действие:"

	msgFeatureDisabled = "Эта функция временно отключена."
	msgUnknownCommand  = "Неизвестная команда. Отправьте /start для списка действий."
	msgIdleHint        = "Сейчас нет активного диалога. Отправьте /start для списка действий."
	msgCancelled       = "❌ Действие отменено."
	msgNothingToCancel = "Нечего отменять."
	msgTryLater        = "Произошла ошибка. Попробуйте позже."

	msgPromptLogin       = "1/3 · Введите логин аккаунта:"
	msgPromptPassword    = "2/3 · Введите пароль:"
	msgPromptConfirm     = "3/3 · Повторите пароль:"
	msgPasswordMismatch  = "Пароли не совпадают. Введите пароль ещё раз:"
	msgLoginTaken        = "Этот логин уже занят. Введите другой логин:"
	msgAlreadyRegistered = "У вас уже есть аккаунт. Регистрация нового невозможна."
	msgRegistered        = "✅ Аккаунт %s создан!"

	msgPromptResetLogin      = "🔄 Введите логин аккаунта для сброса пароля:"
	msgPromptNewPassword     = "Введите новый пароль:"
	msgPromptNewPassConfirm  = "Повторите новый пароль:"
	msgPasswordResetDone     = "✅ Пароль изменён."
	msgPasswordResetNotFound = "❌ Аккаунт с таким логином не найден."

	msgPromptEmailLogin = "Введите логин аккаунта, к которому привязать e-mail:"
	msgPromptEmail      = "Введите e-mail:"
	msgEmailAttached    = "✅ E-mail привязан к аккаунту %s."
	msgEmailNotOwner    = "❌ Этот аккаунт принадлежит другому пользователю."
	msgEmailNotFound    = "❌ Аккаунт с таким логином не найден."

	msgNoAccounts        = "У вас пока нет аккаунтов."
	msgAccountsHeader    = "📋 Ваши аккаунты:\n"
	msgPromptDeletePick  = "Выберите аккаунт для удаления:"
	msgPromptDeleteSure  = "⚠️ Удалить аккаунт %s? Это действие необратимо."
	msgAccountDeleted    = "✅ Аккаунт %s удалён."
	msgDeleteNotOwner    = "❌ Этот аккаунт принадлежит другому пользователю."
	msgDeleteNotFound    = "❌ Аккаунт не найден."
	msgVersion           = "Версия бота: %s"

	msgShopMenu     = "💰 Магазин монет\n\nВыберите пакет:"
	msgShopStub     = "🛒 Пакет «%s» (%d монет).\n\nОплата пока не подключена, покупка недоступна."
	msgShopNoOffers = "В магазине пока нет пакетов."

	lblCancel  = "❌ Отменить"
	lblConfirm = "✅ Подтвердить"
)

// Admin wording
const (
	msgNoAccess = "⛔ Нет доступа."

	msgAdminPanel           = "🛠 Админ-панель\n\nВыберите действие:"
	msgPromptBroadcast      = "Введите текст рассылки:"
	msgPromptBroadcastSure  = "Отправить всем пользователям?\n\n%s"
	msgBroadcastReport      = "✅ Успех: %d | ❌ Ошибок: %d"
	msgDBOK                 = "✅ База данных доступна."
	msgDBFail               = "❌ База данных недоступна. Подробности в логе."
	msgPromptAdminDelete    = "Введите логин аккаунта для удаления:"
	msgPromptAdminDelSure   = "⚠️ Удалить аккаунт %s без проверки владельца?"
	msgAdminDeleted         = "✅ Аккаунт %s удалён."
	msgAdminDeleteNotFound  = "❌ Аккаунт не найден."
	msgConfigReloaded       = "✅ Конфигурация перезагружена."
	msgConfigReloadFailed   = "❌ Не удалось перезагрузить конфигурацию. Подробности в логе."
	msgLogsHeader           = "📄 Последние записи журнала:\n\n"
	msgLogsUnavailable      = "❌ Журнал недоступен."
)
